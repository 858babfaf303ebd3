// Package boardapi is the HTTP gateway to the classroom board service. It is
// the only component that talks request/response to the server; the push
// channel lives in services/stream.
package boardapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"

	"github.com/darasahq/ubao/core"
	"github.com/darasahq/ubao/core/board"
)

type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(conf *core.Config, token string) *Client {
	return &Client{
		baseURL: conf.API.BaseURL,
		token:   token,
		client:  http.DefaultClient,
	}
}

// WithToken returns a copy of the client authenticated as token's bearer.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Questions fetches the full, server-ordered question set for a lecture.
func (c *Client) Questions(ctx context.Context, lectureID string) ([]board.Question, error) {
	var questions []board.Question
	path := fmt.Sprintf("/v1/lectures/%s/questions", lectureID)
	if err := c.do(ctx, http.MethodGet, path, nil, &questions); err != nil {
		return nil, errors.Wrap(err, "listing questions")
	}
	if questions == nil {
		questions = []board.Question{}
	}
	return questions, nil
}

// CreateQuestion posts the raw text; normalization is for comparison only,
// never for what gets stored or displayed.
func (c *Client) CreateQuestion(ctx context.Context, lectureID, text string) (board.Question, error) {
	var question board.Question
	path := fmt.Sprintf("/v1/lectures/%s/questions", lectureID)
	if err := c.do(ctx, http.MethodPost, path, board.NewQuestion{Text: text}, &question); err != nil {
		return board.Question{}, errors.Wrap(err, "creating question")
	}
	return question, nil
}

// PatchQuestion sends exactly the fields set on patch, nothing else.
func (c *Client) PatchQuestion(ctx context.Context, id string, patch board.QuestionPatch) error {
	path := fmt.Sprintf("/v1/questions/%s", id)
	return errors.Wrap(c.do(ctx, http.MethodPatch, path, patch, nil), "patching question")
}

func (c *Client) MyClasses(ctx context.Context) ([]board.Class, error) {
	var classes []board.Class
	if err := c.do(ctx, http.MethodGet, "/v1/classes/my", nil, &classes); err != nil {
		return nil, errors.Wrap(err, "listing classes")
	}
	if classes == nil {
		classes = []board.Class{}
	}
	return classes, nil
}

func (c *Client) Lectures(ctx context.Context, classID string) ([]board.Lecture, error) {
	var lectures []board.Lecture
	path := fmt.Sprintf("/v1/classes/%s/lectures", classID)
	if err := c.do(ctx, http.MethodGet, path, nil, &lectures); err != nil {
		return nil, errors.Wrap(err, "listing lectures")
	}
	if lectures == nil {
		lectures = []board.Lecture{}
	}
	return lectures, nil
}

func (c *Client) JoinClass(ctx context.Context, code string) error {
	return errors.Wrap(c.do(ctx, http.MethodPost, "/v1/classes/join", board.JoinClass{Code: code}, nil), "joining class")
}

type (
	loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	loginResponse struct {
		Token string `json:"token"`
	}
)

// Login exchanges credentials for a token. Token issuance itself belongs to
// the auth service; the engine only carries the result around.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/v1/users/login", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", errors.Wrap(err, "logging in")
	}
	return resp.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "marshalling request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return apiError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "decoding response body")
}

type errorResponse struct {
	Error string `json:"error"`
}

// apiError maps an error response to the taxonomy the controller knows:
// conflicts (server-detected duplicates) and validation rejections carry a
// user-visible message, anything else is opaque.
func apiError(resp *http.Response) error {
	data, _ := ioutil.ReadAll(resp.Body)

	msg := http.StatusText(resp.StatusCode)
	var body errorResponse
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		msg = body.Error
	}

	switch resp.StatusCode {
	case http.StatusConflict:
		return core.NewConflictError(msg)
	case http.StatusBadRequest:
		return core.NewValidationError(errors.New(msg))
	default:
		return errors.Errorf("api: %d: %s", resp.StatusCode, msg)
	}
}
