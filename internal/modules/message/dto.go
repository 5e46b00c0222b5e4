package message

type CreateMessageRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Phone   string `json:"phone" binding:"omitempty,max=32"`
	Email   string `json:"email" binding:"omitempty,email"`
	Message string `json:"message" binding:"required,max=5000"`
}
