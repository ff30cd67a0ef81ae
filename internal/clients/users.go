// Package clients holds the HTTP clients for the external microservices the
// workflow core collaborates with: the user/company directory and the CV store.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// UserDirectory resolves approval state, company membership and user metadata
// from the user service.
type UserDirectory interface {
	IsApproved(ctx context.Context, userID string) (bool, error)
	IsRecruiterInCompany(ctx context.Context, recruiterID, companyID string) (bool, error)
	CompanyPreviews(ctx context.Context, companyIDs []string) (map[string]CompanyPreview, error)
	DisplayNames(ctx context.Context, userIDs []string, requesterEmail string) (map[string]string, error)
	FilteredCandidates(ctx context.Context, filter CandidateFilter) (map[string]CandidateInfo, error)
}

// CompanyPreview is the short company card attached to listings.
type CompanyPreview struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// CandidateInfo is the directory's candidate projection used when filtering
// applications by candidate attributes.
type CandidateInfo struct {
	DisplayName           string `json:"display_name"`
	Salary                string `json:"salary,omitempty"`
	WorkMode              string `json:"work_mode,omitempty"`
	AvailableHoursPerWeek int    `json:"available_hours_per_week,omitempty"`
	AvailableFrom         string `json:"available_from,omitempty"`
}

// CandidateFilter narrows candidates by their directory attributes.
// Zero values mean "any".
type CandidateFilter struct {
	Salary                string
	WorkMode              string
	AvailableHoursPerWeek int
	AvailableFrom         string
}

type UserClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewUserClient(baseURL string, timeout time.Duration) *UserClient {
	return &UserClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *UserClient) IsApproved(ctx context.Context, userID string) (bool, error) {
	var out struct {
		Approved bool `json:"approved"`
	}
	err := c.getJSON(ctx, "/internal/users/"+url.PathEscape(userID)+"/approved", nil, &out)
	if err != nil {
		return false, err
	}
	return out.Approved, nil
}

func (c *UserClient) IsRecruiterInCompany(ctx context.Context, recruiterID, companyID string) (bool, error) {
	query := url.Values{}
	query.Set("recruiter_id", recruiterID)
	query.Set("company_id", companyID)

	var out struct {
		Member bool `json:"member"`
	}
	err := c.getJSON(ctx, "/internal/companies/membership", query, &out)
	if err != nil {
		return false, err
	}
	return out.Member, nil
}

func (c *UserClient) CompanyPreviews(ctx context.Context, companyIDs []string) (map[string]CompanyPreview, error) {
	previews := map[string]CompanyPreview{}
	if len(companyIDs) == 0 {
		return previews, nil
	}
	err := c.postJSON(ctx, "/internal/companies/preview", map[string][]string{"company_ids": companyIDs}, &previews)
	if err != nil {
		return nil, err
	}
	return previews, nil
}

func (c *UserClient) DisplayNames(ctx context.Context, userIDs []string, requesterEmail string) (map[string]string, error) {
	names := map[string]string{}
	if len(userIDs) == 0 {
		return names, nil
	}
	payload := map[string]any{"user_ids": userIDs, "requester_email": requesterEmail}
	if err := c.postJSON(ctx, "/internal/users/display-names", payload, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c *UserClient) FilteredCandidates(ctx context.Context, filter CandidateFilter) (map[string]CandidateInfo, error) {
	query := url.Values{}
	if filter.Salary != "" {
		query.Set("salary", filter.Salary)
	}
	if filter.WorkMode != "" {
		query.Set("work_mode", filter.WorkMode)
	}
	if filter.AvailableHoursPerWeek > 0 {
		query.Set("available_hours_per_week", strconv.Itoa(filter.AvailableHoursPerWeek))
	}
	if filter.AvailableFrom != "" {
		query.Set("available_from", filter.AvailableFrom)
	}

	candidates := map[string]CandidateInfo{}
	if err := c.getJSON(ctx, "/internal/candidates/filter", query, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (c *UserClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create user service request: %w", err)
	}
	return c.do(req, out)
}

func (c *UserClient) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode user service request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create user service request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *UserClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call user service: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read user service response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("user service returned %d: %s", resp.StatusCode, payload)
	}
	return json.Unmarshal(payload, out)
}
