package backend

import (
	"context"
	"net/url"
	"time"

	"github.com/studenthive/portal/pkg/id"
	"go.uber.org/zap"
)

type StudentClient struct {
	*Client
}

func NewStudentClient(base string, timeout time.Duration, logger *zap.Logger) *StudentClient {
	return &StudentClient{Client: newClient("Student", base, timeout, logger)}
}

// AuthUserHref builds the cross-service reference the student service keys
// its records on.
func AuthUserHref(userID id.UserID) string {
	return "/auth/user/" + string(userID)
}

func (c *StudentClient) Detail(ctx context.Context, token string, userID id.UserID) (*Student, error) {
	var out Student
	q := url.Values{"authUserHref": {AuthUserHref(userID)}}
	if err := c.do(ctx, "GET", "/student?"+q.Encode(), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type enrolmentRequest struct {
	AuthUserHref string `json:"authUserHref"`
	CourseHref   string `json:"courseHref"`
}

func (c *StudentClient) Enrol(ctx context.Context, token string, userID id.UserID, courseHref string) (*Student, error) {
	var out Student
	req := enrolmentRequest{AuthUserHref: AuthUserHref(userID), CourseHref: courseHref}
	if err := c.do(ctx, "POST", "/student/enrolment", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
