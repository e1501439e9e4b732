package zip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamePolicy_Sanitize(t *testing.T) {
	tests := []struct {
		name    string
		policy  NamePolicy
		in      string
		want    string
		wantErr bool
	}{
		{"plain relative", PolicyReject, "dir/file.txt", "dir/file.txt", false},
		{"dot segment collapsed", PolicyReject, "./a/./b", "a/b", false},
		{"internal traversal resolved", PolicyReject, "a/b/../c", "a/c", false},
		{"absolute rejected", PolicyReject, "/etc/passwd", "", true},
		{"drive letter rejected", PolicyReject, `C:\Windows\win.ini`, "", true},
		{"escaping traversal rejected", PolicyReject, "../../etc/passwd", "", true},
		{"backslash traversal rejected", PolicyReject, `..\..\x`, "", true},

		{"absolute stripped", PolicyStrip, "/etc/passwd", "etc/passwd", false},
		{"traversal stripped", PolicyStrip, "../../etc/passwd", "etc/passwd", false},
		{"drive letter stripped", PolicyStrip, `C:\temp\f`, "temp/f", false},

		{"absolute allowed", PolicyAllow, "/etc/passwd", "/etc/passwd", false},
		{"traversal allowed", PolicyAllow, "../x", "../x", false},
		{"backslash normalized", PolicyAllow, `a\b`, "a/b", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.policy.Sanitize(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsafeName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNamePolicy(t *testing.T) {
	for _, token := range []string{"reject", "strip", "allow"} {
		p, err := ParseNamePolicy(token)
		require.NoError(t, err)
		assert.Equal(t, token, p.String())
	}

	p, err := ParseNamePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyReject, p)

	_, err = ParseNamePolicy("bogus")
	require.Error(t, err)
}
