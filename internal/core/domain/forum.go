package domain

import "time"

const (
	MaxTitleLength   = 100
	MaxContentLength = 500
	MaxCommentLength = 250
	MaxReasonLength  = 250
)

// Discussion is a question opened by a user.
type Discussion struct {
	ID        int64     `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Owner     string    `json:"owner,omitempty" bson:"owner,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Answer belongs to exactly one discussion.
type Answer struct {
	ID           int64     `json:"id" bson:"_id"`
	DiscussionID int64     `json:"discussionid" bson:"discussionid"`
	Content      string    `json:"content" bson:"content"`
	Owner        string    `json:"owner,omitempty" bson:"owner,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Comment is attached to an answer. AnswerID must reference an existing
// answer of DiscussionID.
type Comment struct {
	ID           int64  `json:"id" bson:"_id"`
	DiscussionID int64  `json:"discussionid" bson:"discussionid"`
	AnswerID     int64  `json:"answerid" bson:"answerid"`
	Content      string `json:"content" bson:"content"`
}

// ReportKind names the kind of entity a report points at.
type ReportKind string

const (
	ReportDiscussion ReportKind = "discussion"
	ReportAnswer     ReportKind = "answer"
	ReportComment    ReportKind = "comment"
)

func (k ReportKind) Valid() bool {
	switch k {
	case ReportDiscussion, ReportAnswer, ReportComment:
		return true
	}
	return false
}

// ReportStatus is the moderation state of a report.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportAccepted ReportStatus = "accepted"
	ReportRejected ReportStatus = "rejected"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportAccepted, ReportRejected:
		return true
	}
	return false
}

// Report flags a discussion, answer or comment for moderation.
type Report struct {
	ID        int64        `json:"id" bson:"_id"`
	Kind      ReportKind   `json:"kind" bson:"kind"`
	TargetID  int64        `json:"targetid" bson:"targetid"`
	Reason    string       `json:"reason" bson:"reason"`
	Owner     string       `json:"owner,omitempty" bson:"owner,omitempty"`
	Status    ReportStatus `json:"status" bson:"status"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
}
