package log_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/geoffmunn/utility-scripts-sub000/log"
)

func TestLogging_NoPrefix(t *testing.T) {
	logger := log.NewLogger("info")

	assert.Equal(t, "level=INFO msg=test\n", logValueWithoutTimestamp(logger, "test"))
	assert.Equal(t, "level=INFO msg=test key=value\n", logValueWithoutTimestamp(logger, "test", "key", "value"))
}

func TestLogging_ApplyPrefix(t *testing.T) {
	logger := log.NewLogger("info")

	logger = logger.ApplyPrefix("[WALLET]")
	assert.Equal(t, "level=INFO msg=\"[WALLET] test\"\n", logValueWithoutTimestamp(logger, "test"))

	logger = logger.ApplyPrefix("[SWAP]")
	assert.Equal(t, "level=INFO msg=\"[WALLET][SWAP] test\"\n", logValueWithoutTimestamp(logger, "test"))
}

func TestLogging_With(t *testing.T) {
	logger := log.NewLogger("info").With("key", "value")

	assert.Equal(t, "level=INFO msg=test key=value\n", logValueWithoutTimestamp(logger, "test"))
	assert.Equal(t, "level=INFO msg=test key=value foo=bar\n", logValueWithoutTimestamp(logger, "test", "foo", "bar"))
}

func TestLogging_DefaultPrefixes(t *testing.T) {
	logger := log.NewLoggerWithPrefixes("info", []string{"[ENGINE]"})

	assert.Equal(t, "level=INFO msg=\"[ENGINE] test\"\n", logValueWithoutTimestamp(logger, "test"))
}

// Swizzle the handler's writer so output is capturable and deterministic.
func logValueWithoutTimestamp(logger *log.Logger, msg string, vals ...any) string {
	buffer := bytes.NewBuffer([]byte{})

	handler := logger.Logger.Handler()
	loggerValue := reflect.ValueOf(handler).Elem()

	next := loggerValue.FieldByName("Next")
	next = next.Elem()
	next = next.Elem()

	next = next.FieldByName("commonHandler")
	next = next.Elem()

	writerField := next.FieldByName("w")
	writerFieldPtr := unsafe.Pointer(writerField.UnsafeAddr())
	reflect.NewAt(writerField.Type(), writerFieldPtr).Elem().Set(reflect.ValueOf(buffer))

	logger.Info(msg, vals...)
	output := buffer.String()

	firstSpace := strings.Index(output, " ")
	return output[firstSpace+1:]
}
