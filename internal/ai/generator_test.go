package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeProvider) Complete(_ context.Context, p string) (string, error) {
	f.prompts = append(f.prompts, p)
	return f.reply, f.err
}

func TestGenerate(t *testing.T) {
	p := &fakeProvider{reply: `{"summary": "修复登录失败问题"}`}
	g := NewGenerator(p)

	msg, err := g.Generate(context.Background(), "fix login bug", "+fixed")
	require.NoError(t, err)
	assert.Equal(t, "修复登录失败问题", msg)

	require.Len(t, p.prompts, 1)
	assert.Contains(t, p.prompts[0], "fix login bug")
	assert.Contains(t, p.prompts[0], "+fixed")
}

func TestGenerateNonEmptyForValidReplies(t *testing.T) {
	diffs := []string{"+a", "-b\n+c", "diff --git a/x b/x\n@@ -1 +1 @@\n-old\n+new"}
	titles := []string{"t", "add feature", "重构"}

	for _, d := range diffs {
		for _, title := range titles {
			g := NewGenerator(&fakeProvider{reply: `{"summary": "更新代码"}`})
			msg, err := g.Generate(context.Background(), title, d)
			require.NoError(t, err)
			assert.NotEmpty(t, msg)
		}
	}
}

func TestGenerateIncompleteIsSoftFailure(t *testing.T) {
	g := NewGenerator(&fakeProvider{err: ErrIncomplete})

	msg, err := g.Generate(context.Background(), "t", "+x")
	require.NoError(t, err)
	assert.Equal(t, FailureMessage, msg)
}

func TestGenerateWrappedIncompleteIsSoftFailure(t *testing.T) {
	g := NewGenerator(&fakeProvider{err: errors.Join(errors.New("ollama"), ErrIncomplete)})

	msg, err := g.Generate(context.Background(), "t", "+x")
	require.NoError(t, err)
	assert.Equal(t, FailureMessage, msg)
}

func TestGenerateMalformedReply(t *testing.T) {
	g := NewGenerator(&fakeProvider{reply: "not json at all"})

	_, err := g.Generate(context.Background(), "t", "+x")
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "not json at all", genErr.Raw)
}

func TestGenerateProviderError(t *testing.T) {
	boom := errors.New("connection refused")
	g := NewGenerator(&fakeProvider{err: boom})

	_, err := g.Generate(context.Background(), "t", "+x")
	assert.ErrorIs(t, err, boom)

	var genErr *GenerationError
	assert.False(t, errors.As(err, &genErr))
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"ollama", Ollama, false},
		{"", Ollama, false},
		{"ZHIPU", Zhipu, false},
		{" zhipu ", Zhipu, false},
		{"openai", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestBackendStringRoundTrip(t *testing.T) {
	for _, b := range Backends {
		got, err := ParseBackend(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
}
