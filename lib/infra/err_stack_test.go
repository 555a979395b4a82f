package infra

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var initPC, initLine = caller()

func caller() (Frame, int) {
	var PCs [3]uintptr
	n := runtime.Callers(2, PCs[:])
	frames := runtime.CallersFrames(PCs[:n])
	frame, _ := frames.Next()
	return Frame(frame.PC), frame.Line
}

func TestFrameFormat(t *testing.T) {
	testcases := []struct {
		Frame
		format string
		want   string
	}{
		{
			initPC,
			"%s",
			"err_stack_test.go",
		},
		{
			initPC,
			"%n",
			"init",
		},
		{
			initPC,
			"%d",
			strconv.Itoa(initLine),
		},
		{
			initPC,
			"%v",
			"err_stack_test.go:" + strconv.Itoa(initLine),
		},
		{
			Frame(0),
			"%s",
			"unknownFile",
		},
		{
			Frame(0),
			"%n",
			"unknownFunc",
		},
		{
			Frame(0),
			"%d",
			"0",
		},
	}

	for _, tc := range testcases {
		frameRes := fmt.Sprintf(tc.format, tc.Frame)
		require.Equal(t, tc.want, frameRes)
	}

	full := fmt.Sprintf("%+s", initPC)
	require.True(t, strings.HasPrefix(full, "github.com/benz9527/xtree/lib/infra.init\n\t"))
	require.True(t, strings.HasSuffix(full, "err_stack_test.go"))
}

func TestFrameMarshalText(t *testing.T) {
	_bytes, err := initPC.MarshalText()
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(_bytes, []byte("github.com/benz9527/xtree/lib/infra.init ")))
	require.True(t, bytes.HasSuffix(_bytes, []byte("err_stack_test.go:"+strconv.Itoa(initLine))))

	_bytes, err = Frame(0).MarshalText()
	require.NoError(t, err)
	require.Equal(t, []byte("unknownFrame"), _bytes)
}

func TestFrameMarshalJSON(t *testing.T) {
	_bytes, err := json.Marshal(initPC)
	require.NoError(t, err)
	res := map[string]string{}
	require.NoError(t, json.Unmarshal(_bytes, &res))
	require.Equal(t, "github.com/benz9527/xtree/lib/infra.init", res["func"])
	require.True(t, strings.HasSuffix(res["fileAndLine"], "err_stack_test.go:"+strconv.Itoa(initLine)))

	_bytes, err = json.Marshal(Frame(0))
	require.NoError(t, err)
	require.Equal(t, []byte("{\"frame\":\"unknownFrame\"}"), _bytes)
}

var errTestSentinel = errors.New("test sentinel")

func TestErrorStackWrap(t *testing.T) {
	require.Nil(t, WrapErrorStack(nil))
	require.Nil(t, WrapErrorStackWithMessage(nil, "ignored"))

	err := WrapErrorStackWithMessage(errTestSentinel, "wrapped")
	require.ErrorIs(t, err, errTestSentinel)
	require.Equal(t, "wrapped: test sentinel", err.Error())

	err = WrapErrorStack(errTestSentinel)
	require.ErrorIs(t, err, errTestSentinel)
	require.Equal(t, "test sentinel", err.Error())

	err = NewErrorStack("standalone")
	require.Equal(t, "standalone", err.Error())
	require.Nil(t, errors.Unwrap(err))

	var es ErrorStack
	require.True(t, errors.As(err, &es))
	require.Greater(t, len(es.StackTrace()), 0)
	require.Equal(t, "TestErrorStackWrap", funcName(Frame(es.StackTrace()[0]).name()))
}

func TestErrorStackFormat(t *testing.T) {
	err := WrapErrorStackWithMessage(errTestSentinel, "format")
	require.Equal(t, "format: test sentinel", fmt.Sprintf("%s", err))
	require.Equal(t, "format: test sentinel", fmt.Sprintf("%v", err))
	require.Equal(t, "\"format: test sentinel\"", fmt.Sprintf("%q", err))

	verbose := fmt.Sprintf("%+v", err)
	require.True(t, strings.HasPrefix(verbose, "format: test sentinel\n"))
	require.Contains(t, verbose, "TestErrorStackFormat")
}

func TestErrorStackMarshalLogObject(t *testing.T) {
	err := NewErrorStack("marshal")
	es, ok := err.(ErrorStack)
	require.True(t, ok)

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, es.MarshalLogObject(enc))
	require.Equal(t, "marshal", enc.Fields["error"])
	frames, ok := enc.Fields["errorStack"].([]any)
	require.True(t, ok)
	require.Greater(t, len(frames), 0)
}
