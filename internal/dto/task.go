package dto

type CreateTaskRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	StartDate    string  `json:"start_date"`
	DueDate      string  `json:"due_date"`
	AssignedToID *string `json:"assigned_to_id"`
}

// UpdateTaskRequest uses pointers so absent fields stay untouched.
type UpdateTaskRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Status        *string `json:"status"`
	Priority      *string `json:"priority"`
	StartDate     *string `json:"start_date"`
	DueDate       *string `json:"due_date"`
	DelegatedToID *string `json:"delegated_to_id"`
}

type DelegateTaskRequest struct {
	ToUserID string `json:"to_user_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CommentRequest struct {
	Message string `json:"message"`
}
