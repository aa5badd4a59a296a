package myhttp

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AkshMaheshwari/MyEzz/lib/myerrors"
	"github.com/AkshMaheshwari/MyEzz/lib/mylog"
)

func TestWrite(t *testing.T) {
	c := context.TODO()
	writer := NewWriter(mylog.New("test"))

	t.Run("Success response", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		writer.Write(c, recorder, 200, SuccessResponse{Message: "done"})

		assert.Equal(t, 200, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		assert.Contains(t, recorder.Body.String(), `"Message": "done"`)
	})

	t.Run("Error response", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		writer.WriteError(c, recorder, 1, myerrors.NewNotFoundError(fmt.Errorf("no such order")))

		assert.Equal(t, 404, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		assert.Contains(t, recorder.Body.String(), `"ErrorCode": 1`)
	})
}
