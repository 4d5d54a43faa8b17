// Copyright 2026 The Berth Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:  "minimal declaration",
			input: "services:\n  web:\n    image: nginx\n",
		},
		{
			name:  "unknown top-level sections are accepted",
			input: "services:\n  web:\n    image: nginx\nconfigs:\n  site: {}\n",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrEmptyDocument,
		},
		{
			name:    "whitespace only",
			input:   "   \n\t\n",
			wantErr: ErrEmptyDocument,
		},
		{
			name:    "comments only",
			input:   "# nothing here\n",
			wantErr: ErrEmptyDocument,
		},
		{
			name:    "explicit null",
			input:   "null\n",
			wantErr: ErrEmptyDocument,
		},
		{
			name:    "tilde null",
			input:   "~\n",
			wantErr: ErrEmptyDocument,
		},
		{
			name:    "bare scalar",
			input:   "just a string\n",
			wantErr: ErrNotMapping,
		},
		{
			name:    "top-level sequence",
			input:   "- web\n- db\n",
			wantErr: ErrNotMapping,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, doc)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("services:\n  web: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid yaml")
}

func TestParse_RoundTripPreservesText(t *testing.T) {
	input := "# tenant app\nservices:\n  web:\n    image: nginx # pinned by ops\n    ports:\n      - \"80:80\"\n"
	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	out, err := doc.Marshal()
	require.NoError(t, err)

	assert.Contains(t, string(out), "# tenant app")
	assert.Contains(t, string(out), "image: nginx # pinned by ops")
	assert.Contains(t, string(out), `- "80:80"`)
}

func TestParse_RoundTripPreservesKeyOrder(t *testing.T) {
	input := "services:\n  zeta:\n    image: a\n  alpha:\n    image: b\n  mid:\n    image: c\n"
	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, doc.ServiceNames())

	out, err := doc.Marshal()
	require.NoError(t, err)
	reparsed, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, reparsed.ServiceNames())
}
