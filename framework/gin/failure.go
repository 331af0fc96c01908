package casdoorgin

import (
	"context"
	"net/http"
)

type failureSlot struct {
	err error
}

type failureSlotKey struct{}

func withFailureSlot(r *http.Request) (*http.Request, *failureSlot) {
	slot := &failureSlot{}
	return r.WithContext(context.WithValue(r.Context(), failureSlotKey{}, slot)), slot
}

func recordFailure(_ http.ResponseWriter, r *http.Request, err error) {
	if slot, ok := r.Context().Value(failureSlotKey{}).(*failureSlot); ok {
		slot.err = err
	}
}
