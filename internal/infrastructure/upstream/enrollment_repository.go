package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

// EnrollmentRepository implements ports.EnrollmentRepository against the
// registry's enrollment collection and its action endpoints.
type EnrollmentRepository struct {
	client *Client
}

func NewEnrollmentRepository(client *Client) *EnrollmentRepository {
	return &EnrollmentRepository{client: client}
}

func (r *EnrollmentRepository) List(ctx context.Context, filter ports.EnrollmentFilter) ([]domain.Enrollment, error) {
	query := map[string]string{}
	if filter.Client != "" {
		query["client"] = string(filter.Client)
	}
	if filter.Program != 0 {
		query["program"] = strconv.FormatInt(filter.Program, 10)
	}
	return collect[domain.Enrollment](ctx, r.client, "/enrollments/", query)
}

func (r *EnrollmentRepository) Get(ctx context.Context, id int64) (*domain.Enrollment, error) {
	body, err := r.client.get(ctx, fmt.Sprintf("/enrollments/%d/", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Enrollment](body)
}

// Enroll calls the registry's dedicated enrollment action. The registry owns
// duplicate detection; its rejection comes back as an *Error.
func (r *EnrollmentRepository) Enroll(ctx context.Context, p ports.EnrollPayload) (*domain.Enrollment, error) {
	body, err := r.client.post(ctx, "/enrollments/enroll_client/", p)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Enrollment](body)
}

func (r *EnrollmentRepository) Update(ctx context.Context, id int64, p ports.EnrollmentPayload) (*domain.Enrollment, error) {
	body, err := r.client.put(ctx, fmt.Sprintf("/enrollments/%d/", id), p)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Enrollment](body)
}

func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.client.delete(ctx, fmt.Sprintf("/enrollments/%d/", id))
	return err
}

func (r *EnrollmentRepository) ToggleActive(ctx context.Context, id int64) (bool, error) {
	body, err := r.client.post(ctx, fmt.Sprintf("/enrollments/%d/toggle_active/", id), nil)
	if err != nil {
		return false, err
	}
	var payload struct {
		Status   string `json:"status"`
		IsActive bool   `json:"is_active"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return false, fmt.Errorf("toggle decode: %w", err)
	}
	return payload.IsActive, nil
}

// DashboardRepository implements ports.DashboardRepository.
type DashboardRepository struct {
	client *Client
}

func NewDashboardRepository(client *Client) *DashboardRepository {
	return &DashboardRepository{client: client}
}

func (r *DashboardRepository) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	body, err := r.client.get(ctx, "/dashboard/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.DashboardSummary](body)
}
