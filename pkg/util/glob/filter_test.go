// Copyright 2025 Alibaba Group Holding Ltd.
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

package glob

import "testing"

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		rel     string
		want    bool
	}{
		{name: "empty filter keeps all", rel: "a/b.txt", want: true},
		{name: "include by name", include: []string{"*.py"}, rel: "cli/bin/tool.py", want: true},
		{name: "include by name misses", include: []string{"*.py"}, rel: "cli/bin/tool.go", want: false},
		{name: "include by path", include: []string{"cli/**/*.go"}, rel: "cli/bin/x/tool.go", want: true},
		{name: "path pattern anchored", include: []string{"cli/**"}, rel: "other/cli/x", want: false},
		{name: "exclude wins", include: []string{"**"}, exclude: []string{"*.pyc"}, rel: "a/b.pyc", want: false},
		{name: "exclude directory tree", exclude: []string{".git/**"}, rel: ".git/objects/ab", want: false},
		{name: "alternatives", include: []string{"*.{go,mod}"}, rel: "go.mod", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.include, tt.exclude)
			if err != nil {
				t.Fatalf("NewFilter: %v", err)
			}
			if got := f.Match(tt.rel); got != tt.want {
				t.Fatalf("Match(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestNewFilterRejectsBadPattern(t *testing.T) {
	if _, err := NewFilter([]string{"[abc"}, nil); err == nil {
		t.Fatalf("expected error for unterminated class")
	}
	if _, err := NewFilter(nil, []string{"{a,b"}); err == nil {
		t.Fatalf("expected error for unterminated alternatives")
	}
}

func TestNilFilter(t *testing.T) {
	var f *Filter
	if !f.Match("anything") || !f.Empty() {
		t.Fatalf("nil filter should keep everything")
	}
}
