package notification_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/entity"
	"boxoffice/notification"
)

func TestBuffer_DisplayAndDrain(t *testing.T) {
	buffer := notification.NewBuffer()
	ctx := context.Background()

	require.NoError(t, buffer.Display(ctx, entity.Notification{Title: "first"}))
	require.NoError(t, buffer.Display(ctx, entity.Notification{Title: "second", IsError: true}))

	pending := buffer.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "first", pending[0].Title)

	drained := buffer.Drain()
	require.Len(t, drained, 2)
	assert.Empty(t, buffer.Pending())
}

func TestBuffer_DropsOldestWhenFull(t *testing.T) {
	buffer := notification.NewBuffer()
	ctx := context.Background()

	for i := 0; i < 40; i++ {
		require.NoError(t, buffer.Display(ctx, entity.Notification{Title: fmt.Sprintf("n-%d", i)}))
	}

	pending := buffer.Pending()
	require.Len(t, pending, 32)
	assert.Equal(t, "n-8", pending[0].Title)
	assert.Equal(t, "n-39", pending[len(pending)-1].Title)
}
