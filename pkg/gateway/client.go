package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const tokenSubject = "recipe-admin"

type (
	// TokenSource issues the bearer token attached to every call.
	TokenSource interface {
		GenerateServiceToken(subject string) (string, error)
	}

	Client struct {
		baseURL string
		timeout time.Duration
		tokens  TokenSource
	}

	Request struct {
		Op     string
		Method string
		Path   string
		Query  url.Values
		Body   any
		// NotFound is wrapped into the GatewayError returned for a 404.
		NotFound error
	}

	errorBody struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	result struct {
		code int
		body []byte
		errs []error
	}
)

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		tokens:  tokens,
	}
}

// Do sends req and decodes a successful JSON response into out. When ctx ends
// first the call is abandoned and its eventual response ignored.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	agent, err := c.agent(req)
	if err != nil {
		return &GatewayError{Op: req.Op, Err: err}
	}

	done := make(chan result, 1)
	go func() {
		code, body, errs := agent.Bytes()
		done <- result{code: code, body: body, errs: errs}
	}()

	var res result
	select {
	case <-ctx.Done():
		log.Warnw("gateway call abandoned", "op", req.Op, "error", ctx.Err())
		return &GatewayError{Op: req.Op, Err: ctx.Err()}
	case res = <-done:
	}

	if len(res.errs) > 0 {
		log.Errorw("gateway call failed", "op", req.Op, "errors", res.errs)
		return &GatewayError{
			Op:      req.Op,
			Message: "the recipe service could not be reached",
			Err:     errors.Join(append([]error{ErrUnavailable}, res.errs...)...),
		}
	}

	if res.code >= fiber.StatusBadRequest {
		return c.statusError(req, res)
	}

	if out == nil || len(res.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.body, out); err != nil {
		return &GatewayError{Op: req.Op, StatusCode: res.code, Message: "the recipe service sent an unreadable response", Err: err}
	}
	return nil
}

func (c *Client) agent(req Request) (*fiber.Agent, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	agent := fiber.AcquireAgent()
	agent.Request().Header.SetMethod(req.Method)
	agent.Request().SetRequestURI(target)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}
	if c.tokens != nil {
		token, err := c.tokens.GenerateServiceToken(tokenSubject)
		if err != nil {
			fiber.ReleaseAgent(agent)
			return nil, err
		}
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if req.Body != nil {
		agent.JSON(req.Body)
	}
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, err
	}
	return agent, nil
}

func (c *Client) statusError(req Request, res result) error {
	var body errorBody
	message := ""
	if err := json.Unmarshal(res.body, &body); err == nil {
		message = body.Message
		if message == "" {
			message = body.Error
		}
	} else {
		message = string(res.body)
	}
	message = SanitizeMessage(message)
	if message == "" {
		message = fiber.ErrInternalServerError.Message
		if res.code < fiber.StatusInternalServerError {
			message = "request rejected by the recipe service"
		}
	}

	ge := &GatewayError{Op: req.Op, StatusCode: res.code, Message: message}
	if res.code == fiber.StatusNotFound && req.NotFound != nil {
		ge.Err = req.NotFound
	}
	log.Warnw("gateway call rejected", "op", req.Op, "status", res.code, "message", message)
	return ge
}
