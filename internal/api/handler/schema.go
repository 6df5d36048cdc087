package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createCommentRequest struct {
	DiscussionID int64  `json:"discussionid" validate:"required,gt=0"`
	Content      string `json:"content"      validate:"required,max=250"`
}

type createDiscussionRequest struct {
	Title   string `json:"title"   validate:"required,max=100"`
	Content string `json:"content" validate:"required,max=500"`
}

type createAnswerRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

type createReportRequest struct {
	Reason string `json:"reason" validate:"required,max=250"`
}

type resolveReportRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected"`
}

type listReportsQuery struct {
	Kind string `query:"kind" validate:"omitempty,oneof=discussion answer comment"`
}
