// This file is part of intercal72 - https://github.com/sgreben/intercal72
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

package translate

import (
	_ "embed"
	"text/template"
)

//go:embed main.go.tmpl
var mainTemplateSource string

var mainTemplate = template.Must(template.New("main.go").Parse(mainTemplateSource))

// templateData is everything main.go.tmpl needs beyond the rendered
// program literal: the scalar knobs Emit's caller controls.
type templateData struct {
	SourceFile string // original .i path, recorded in a header comment only
	Program    string // pre-rendered runtime.Program{...} literal text
	Seed       int64
	HasBugRate bool
	BugRate    float64
	Optimize   bool
}
