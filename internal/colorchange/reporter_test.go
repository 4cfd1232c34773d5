package colorchange

import (
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"color-scene/internal/graphql"
)

type fakeDoer struct {
	reqs []graphql.Request
	resp string
	err  error
}

func (f *fakeDoer) Do(ctx context.Context, req graphql.Request, out any) error {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.resp), out)
}

func TestInputJSON(t *testing.T) {
	data, err := json.Marshal(NewInput(RGB(1, 0.5, 0)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Color changed","value":{"r":1,"g":0.5,"b":0}}`, string(data))
}

func TestColorConversions(t *testing.T) {
	c := FromRGBA(color.RGBA{R: 255, G: 0, B: 0, A: 255})
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.Equal(t, "#ff0000", c.Hex())
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, c.RGBA8())
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, RGB(1.5, -1, 0).RGBA8(), "out of range clamps")

	var back Color
	require.NoError(t, json.Unmarshal([]byte(`{"r":0.25,"g":0.5,"b":0.75}`), &back))
	assert.Equal(t, RGB(0.25, 0.5, 0.75), back)
}

func TestReportSendsMutation(t *testing.T) {
	f := &fakeDoer{resp: `{"createColorChange":{"id":"abc","name":"Color changed","value":{"r":0,"g":1,"b":0},"createdAt":"2024-01-02T03:04:05Z","updatedAt":"2024-01-02T03:04:05Z"}}`}
	r := NewReporter(f, 0)

	rec, err := r.Report(context.Background(), RGB(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, f.reqs, 1)
	assert.Equal(t, CreateColorChange, f.reqs[0].Query)
	assert.Equal(t, NewInput(RGB(0, 1, 0)), f.reqs[0].Variables["input"])
	assert.Equal(t, "abc", rec.ID)
	assert.Equal(t, RGB(0, 1, 0), rec.Value)
}

func TestReportWrapsErrors(t *testing.T) {
	f := &fakeDoer{err: errors.New("boom")}
	_, err := NewReporter(f, 0).Report(context.Background(), RGB(0, 0, 1))
	assert.EqualError(t, err, "create color change #0000ff: boom")
}

func TestSubmitAgainstServer(t *testing.T) {
	bodies := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		bodies <- body
		_, _ = io.WriteString(w, `{"data":{"createColorChange":{"id":"1","name":"Color changed","value":{"r":0.2,"g":0.4,"b":0.6}}}}`)
	}))
	defer srv.Close()

	r := NewReporter(graphql.New(srv.URL, "key", time.Second), time.Second)
	done := make(chan error, 1)
	r.Submit(RGB(0.2, 0.4, 0.6), func(rec *ColorChange, err error) {
		if err == nil && rec.ID != "1" {
			err = errors.New("unexpected record")
		}
		done <- err
	})

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("submit did not complete")
	}
	body := <-bodies
	vars := body["variables"].(map[string]any)
	assert.Equal(t, map[string]any{
		"name":  "Color changed",
		"value": map[string]any{"r": 0.2, "g": 0.4, "b": 0.6},
	}, vars["input"])
}

func TestSubmitFailureReachesDone(t *testing.T) {
	f := &fakeDoer{err: errors.New("offline")}
	done := make(chan error, 1)
	NewReporter(f, time.Second).Submit(RGB(1, 1, 1), func(_ *ColorChange, err error) { done <- err })
	select {
	case err := <-done:
		assert.ErrorContains(t, err, "offline")
	case <-time.After(5 * time.Second):
		t.Fatal("submit did not complete")
	}
}
