package harvest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMapsDetachmentToStale(t *testing.T) {
	//message shapes playwright actually produces for dead handles
	staleMessages := []string{
		"Element is not attached to the DOM",
		"Protocol error (DOM.describeNode): Node is detached from document",
		"Execution context was destroyed, most likely because of a navigation",
	}
	for _, msg := range staleMessages {
		assert.ErrorIs(t, classify(errors.New(msg)), ErrStale, msg)
	}

	plain := errors.New("ReferenceError: q is not defined")
	assert.False(t, errors.Is(classify(plain), ErrStale), "script bugs are not staleness")
	assert.NoError(t, classify(nil))
}
