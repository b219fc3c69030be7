package teamservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// Client клиент для работы с TeamService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента TeamService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetTeam получает команду вместе со списком участников
func (c *Client) GetTeam(ctx context.Context, teamID int64) (*domain.Team, error) {
	url := fmt.Sprintf("%s/internal/teams/%d", c.baseURL, teamID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("TeamService request failed for team_id=%d: %v", teamID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrTeamNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid team ID format", ErrInvalidResponse)
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("TeamService returned %d for team_id=%d: %s", resp.StatusCode, teamID, string(body))
		return nil, fmt.Errorf("%w: status code %d", ErrServiceUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var team Team
	if err := json.NewDecoder(resp.Body).Decode(&team); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if team.ID != teamID {
		return nil, fmt.Errorf("%w: requested team %d, got %d", ErrInvalidResponse, teamID, team.ID)
	}

	return team.toDomain(), nil
}

// IsMember проверяет, состоит ли пользователь в команде
func (c *Client) IsMember(ctx context.Context, teamID, userID int64) (bool, error) {
	team, err := c.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			return false, nil
		}
		return false, err
	}
	return team.HasMember(userID), nil
}
