package web

import (
	"reflect"
	"testing"

	"github.com/dmsforum/forum/internal/core/domain"
)

func TestAuthorize(t *testing.T) {
	discussion := &domain.Session{User: "alice", Token: "t", Roles: []string{"DISCUSSION"}}

	tests := []struct {
		name string
		sess *domain.Session
		role domain.Role
		want *Redirect
	}{
		{"no session", nil, domain.RoleDiscussion, &Redirect{Location: "/login"}},
		{"empty token", &domain.Session{User: "alice", Roles: []string{"DISCUSSION"}}, domain.RoleDiscussion, &Redirect{Location: "/login"}},
		{"missing role", discussion, domain.RoleModeration, &Redirect{Location: "/home"}},
		{"role held", discussion, domain.RoleDiscussion, nil},
		{"any role", discussion, anyRole, nil},
		{"any role needs login", nil, anyRole, &Redirect{Location: "/login"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.sess, tt.role); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Authorize = %+v, want %+v", got, tt.want)
			}
		})
	}
}
