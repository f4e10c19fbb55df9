// internal/dashboard/state.go
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// The dashboard is a finite-state machine: a State, a closed set of
// Events, and one Reduce transition function. Every mutation waits for
// the API round trip inside Reduce; there is no optimistic rendering
// and no retry.

type Phase string

const (
	PhaseLoggedOut Phase = "logged_out"
	PhaseLoggedIn  Phase = "logged_in"
)

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is the transient banner below the forms. It is cleared by
// MessageTimerFired once it has been on screen for the configured TTL.
type Message struct {
	Text    string
	Kind    MessageKind
	ShownAt time.Time
}

// ProductForm holds the add-product inputs between renders. ImageData
// is only populated for the request that carries the upload; it is
// never stored in the session.
type ProductForm struct {
	Name          string
	Description   string
	Price         string
	ImageFilename string
	ImageData     []byte
}

func (f ProductForm) complete() bool {
	return f.Name != "" && f.Description != "" && f.Price != "" && len(f.ImageData) > 0
}

type State struct {
	Phase   Phase
	UserID  uint
	Token   string
	Form    ProductForm
	Message Message
}

func NewState() State {
	return State{Phase: PhaseLoggedOut}
}

// Event is the closed union of dashboard triggers.
type Event interface {
	isEvent()
}

type LoginClicked struct {
	Username string
	Password string
}

type LogoutClicked struct{}

type AddProductClicked struct {
	Form ProductForm
}

type MessageTimerFired struct{}

func (LoginClicked) isEvent()      {}
func (LogoutClicked) isEvent()     {}
func (AddProductClicked) isEvent() {}
func (MessageTimerFired) isEvent() {}

// API is the surface Reduce drives; *Client implements it.
type API interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	CreateProduct(ctx context.Context, name, description string, price float64, filename string, image []byte) (uint, error)
}

// Reduce applies one event to the state and returns the next state.
// now is injected so message timestamps are deterministic under test.
func Reduce(ctx context.Context, st State, ev Event, api API, now time.Time) State {
	switch e := ev.(type) {
	case LoginClicked:
		return reduceLogin(ctx, st, e, api, now)
	case LogoutClicked:
		return State{
			Phase:   PhaseLoggedOut,
			Message: Message{Text: "You have been logged out.", Kind: MessageSuccess, ShownAt: now},
		}
	case AddProductClicked:
		return reduceAddProduct(ctx, st, e, api, now)
	case MessageTimerFired:
		st.Message = Message{}
		return st
	}
	return st
}

func reduceLogin(ctx context.Context, st State, e LoginClicked, api API, now time.Time) State {
	if e.Username == "" || e.Password == "" {
		st.Message = Message{Text: "Please enter both username and password.", Kind: MessageError, ShownAt: now}
		return st
	}

	result, err := api.Login(ctx, e.Username, e.Password)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			st.Message = Message{Text: "Invalid username or password.", Kind: MessageError, ShownAt: now}
		} else {
			st.Message = Message{Text: "Error connecting to server: " + err.Error(), Kind: MessageError, ShownAt: now}
		}
		return st
	}

	st.Phase = PhaseLoggedIn
	st.UserID = result.UserID
	st.Token = result.Token
	st.Message = Message{
		Text:    fmt.Sprintf("Login successful! User ID: %d", result.UserID),
		Kind:    MessageSuccess,
		ShownAt: now,
	}
	return st
}

func reduceAddProduct(ctx context.Context, st State, e AddProductClicked, api API, now time.Time) State {
	if st.Phase != PhaseLoggedIn {
		return st
	}

	// Keep the entered values either way so a failed submit does not
	// wipe the form.
	st.Form = e.Form

	if !e.Form.complete() {
		st.Message = Message{Text: "Please fill in all fields and upload an image.", Kind: MessageError, ShownAt: now}
		return st
	}

	price, err := strconv.ParseFloat(e.Form.Price, 64)
	if err != nil {
		st.Message = Message{Text: "Price must be a number.", Kind: MessageError, ShownAt: now}
		return st
	}

	_, err = api.CreateProduct(ctx, e.Form.Name, e.Form.Description, price, e.Form.ImageFilename, e.Form.ImageData)
	if err != nil {
		st.Message = Message{Text: "Error adding product: " + err.Error(), Kind: MessageError, ShownAt: now}
		return st
	}

	st.Form = ProductForm{}
	st.Message = Message{Text: "Product added successfully!", Kind: MessageSuccess, ShownAt: now}
	return st
}
