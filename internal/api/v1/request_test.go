package v1

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Transition(t *testing.T) {
	for _, to := range []RequestStatus{RequestConfirmed, RequestRejected, RequestCanceled} {
		r := Request{ID: "r1", Status: RequestPending}
		require.NoError(t, r.Transition(to))
		assert.Equal(t, to, r.Status)
	}
}

func TestRequest_TransitionFromTerminalFails(t *testing.T) {
	for _, from := range []RequestStatus{RequestConfirmed, RequestRejected, RequestCanceled} {
		for _, to := range []RequestStatus{RequestPending, RequestConfirmed, RequestRejected, RequestCanceled} {
			r := Request{ID: "r1", Status: from}
			err := r.Transition(to)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTerminal))
			assert.Equal(t, from, r.Status, "terminal status must never change")
		}
	}
}

func TestRequest_TransitionToPendingFails(t *testing.T) {
	r := Request{ID: "r1", Status: RequestPending}
	require.Error(t, r.Transition(RequestPending))
	assert.Equal(t, RequestPending, r.Status)
}

func TestStatusUpdate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		update  StatusUpdate
		wantErr bool
	}{
		{name: "confirm", update: StatusUpdate{RequestIDs: []string{"a", "b"}, Status: RequestConfirmed}},
		{name: "reject", update: StatusUpdate{RequestIDs: []string{"a"}, Status: RequestRejected}},
		{name: "cancel target", update: StatusUpdate{RequestIDs: []string{"a"}, Status: RequestCanceled}, wantErr: true},
		{name: "pending target", update: StatusUpdate{RequestIDs: []string{"a"}, Status: RequestPending}, wantErr: true},
		{name: "empty ids", update: StatusUpdate{Status: RequestConfirmed}, wantErr: true},
		{name: "blank id", update: StatusUpdate{RequestIDs: []string{""}, Status: RequestConfirmed}, wantErr: true},
		{name: "repeated id", update: StatusUpdate{RequestIDs: []string{"a", "a"}, Status: RequestConfirmed}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRequestStatus_Predicates(t *testing.T) {
	assert.False(t, RequestPending.Terminal())
	assert.True(t, RequestPending.Active())
	assert.True(t, RequestConfirmed.Terminal())
	assert.True(t, RequestConfirmed.Active())
	assert.False(t, RequestRejected.Active())
	assert.False(t, RequestCanceled.Active())
}
