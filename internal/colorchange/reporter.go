package colorchange

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"color-scene/internal/graphql"
)

// EventName is the name every recorded color change carries.
const EventName = "Color changed"

// CreateColorChange is the mutation that stores one color change record.
const CreateColorChange = `mutation CreateColorChange(
  $input: CreateColorChangeInput!
  $condition: ModelColorChangeConditionInput
) {
  createColorChange(input: $input, condition: $condition) {
    id
    name
    value {
      r
      g
      b
    }
    createdAt
    updatedAt
  }
}`

// Input is the payload of one createColorChange call.
type Input struct {
	Name  string `json:"name"`
	Value Color  `json:"value"`
}

// ColorChange is the record the API returns.
type ColorChange struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Value     Color     `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Doer executes a GraphQL request; *graphql.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, req graphql.Request, out any) error
}

// Reporter records color changes on the remote API.
type Reporter struct {
	api     Doer
	timeout time.Duration
}

// NewReporter returns a Reporter. timeout bounds each Submit; zero means none.
func NewReporter(api Doer, timeout time.Duration) *Reporter {
	return &Reporter{api: api, timeout: timeout}
}

// NewInput builds the payload for c.
func NewInput(c Color) Input {
	return Input{Name: EventName, Value: c}
}

// Report sends one createColorChange mutation for c and returns the created record.
// The color is sent as is.
func (r *Reporter) Report(ctx context.Context, c Color) (*ColorChange, error) {
	req := graphql.Request{
		Query:     CreateColorChange,
		Variables: map[string]any{"input": NewInput(c)},
	}
	var out struct {
		CreateColorChange *ColorChange `json:"createColorChange"`
	}
	if err := r.api.Do(ctx, req, &out); err != nil {
		return nil, errors.Wrapf(err, "create color change %s", c.Hex())
	}
	return out.CreateColorChange, nil
}

// Submit reports c on its own goroutine and returns immediately.
// done, if non-nil, is called from that goroutine with the outcome.
func (r *Reporter) Submit(c Color, done func(*ColorChange, error)) {
	go func() {
		ctx := context.Background()
		if r.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}
		rec, err := r.Report(ctx, c)
		if done != nil {
			done(rec, err)
		}
	}()
}
