package text

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/savelink/pkg/detection"
	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/state"
	"github.com/arthur-debert/savelink/pkg/types"
	"github.com/arthur-debert/savelink/pkg/ui/display"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, v interface{}) []byte {
	t.Helper()
	var buf bytes.Buffer
	r, err := New(&buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(v))
	return buf.Bytes()
}

func TestGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	tests := []struct {
		name  string
		value interface{}
	}{
		{
			name: "link_success",
			value: &types.OperationResult{
				Kind:    types.OperationLink,
				Success: true,
				Message: "Link created successfully!",
				Log: []string{
					"[LINK] Copying /saves to /cloud/Saves",
					"[BACKUP] Created: /backups/Saves-backup-20240301-123045",
					"[OK] Link created successfully!",
				},
			},
		},
		{
			name: "restore_failure",
			value: &types.OperationResult{
				Kind:    types.OperationRestore,
				Message: "/saves is not a link, nothing to restore",
				Log:     []string{"[ERROR] /saves is not a link, nothing to restore"},
			},
		},
		{
			name: "detect_missing",
			value: detection.Result{
				Platform: "Linux",
				Hint:     "Saves are usually in ~/.config/StardewValley/Saves",
			},
		},
		{
			name: "status_wrong_target",
			value: display.NewStatusView(state.LinkReport{
				Path:           "/saves",
				State:          types.LinkState{Kind: types.StateLink, Target: "/cloud/Other"},
				ExpectedTarget: "/cloud/Saves",
				Problem:        state.ProblemWrongTarget,
			}, types.BackupRecord{}, false),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, render(t, tt.value))
		})
	}
}

func TestUnknownTypeFallsBack(t *testing.T) {
	out := render(t, struct{ A int }{A: 7})
	assert.Equal(t, "{A:7}\n", string(out))
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	r, _ := New(&buf)

	require.NoError(t, r.RenderError(errors.New(errors.ErrPrecondition, "already linked")))
	require.NoError(t, r.RenderError(stderrors.New("plain")))
	assert.Equal(t, "Error: already linked\nError: plain\n", buf.String())
}

func TestRenderMessage(t *testing.T) {
	var buf bytes.Buffer
	r, _ := New(&buf)
	require.NoError(t, r.RenderMessage("hello"))
	assert.Equal(t, "hello\n", buf.String())
}
