package handlers

const (
	ErrInvalidLessonID     = "Invalid lesson ID"
	ErrInvalidPracticeID   = "Invalid practice ID"
	ErrInvalidQuestionID   = "Invalid question ID"
	ErrInvalidJSON         = "Invalid JSON body"
	ErrUnsupportedPractice = "Unsupported practice type"
	ErrInternalServerError = "Internal server error"

	// maxBodyBytes bounds answer and selection payloads
	maxBodyBytes = 1 << 20
)
