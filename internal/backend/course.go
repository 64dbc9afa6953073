package backend

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type CourseClient struct {
	*Client
}

func NewCourseClient(base string, timeout time.Duration, logger *zap.Logger) *CourseClient {
	return &CourseClient{Client: newClient("Course", base, timeout, logger)}
}

func (c *CourseClient) AllCourses(ctx context.Context, token string) (*CourseList, error) {
	var out CourseList
	if err := c.do(ctx, "GET", "/courses", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CoursesByID resolves a set of course ids (hrefs with the /courses/ prefix
// stripped) to full course records.
func (c *CourseClient) CoursesByID(ctx context.Context, token string, courseIDs []string) (*CourseList, error) {
	var out CourseList
	if err := c.do(ctx, "POST", "/courses/list", token, courseIDs, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
