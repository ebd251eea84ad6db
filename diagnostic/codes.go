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

package diagnostic

import "fmt"

// Code is a three-digit E-code, rendered canonically as "ICLnnnI".
type Code int

const (
	E000 Code = 0   // unparseable statement body (BadStmt) executed
	E079 Code = 79  // too polite
	E099 Code = 99  // not polite enough
	E123 Code = 123 // next-stack overflow
	E127 Code = 127 // library not available
	E129 Code = 129 // program empty
	E139 Code = 139 // label target missing (literal NEXT/COME FROM/ABSTAIN/REINSTATE, computed ABSTAIN/REINSTATE)
	E182 Code = 182 // COME FROM conflict (duplicate literal target, compile or run time)
	E275 Code = 275 // 16-bit overflow ("wrong spot")
	E533 Code = 533 // 32-bit overflow ("too big for its spots")
	E555 Code = 555 // dual COME FROM fired ("flow control flew out the window")
	E621 Code = 621 // RESUME with n == 0
	E632 Code = 632 // RESUME with insufficient next-stack depth
	E633 Code = 633 // fell off the end of the program
	E774 Code = 774 // simulated compiler bug (translator only)
	E778 Code = 778 // interrupted ("Hack, Hack, Hack")
	E993 Code = 993 // misplaced TRY AGAIN
	E997 Code = 997 // unsupported operation on an ignored variable
)

var messages = map[Code]string{
	E000: "I wasn't expecting quite so many characters, were you?",
	E079: "PROGRAMMER IS EXCESSIVELY POLITE",
	E099: "PROGRAMMER IS INSUFFICIENTLY POLITE",
	E123: "PROGRAM HAS TRIED TO DO AN AWFUL LOT OF NEXTING",
	E127: "SAYING WHAT YOU MEAN CAN BE HAZARDOUS TO THIS PROGRAM'S HEALTH",
	E129: "PROGRAM HAS DISAPPEARED INTO THE BLACK LAGOON",
	E139: "YOU CAN'T ABSTAIN FROM A LABEL THAT DOESN'T EXIST",
	E182: "YOU CAN'T GO COME FROM HERE TO THERE... OR SOMEWHERE ELSE ENTIRELY",
	E275: "WRONG SPOT: THAT VALUE DOESN'T FIT IN A 16-BIT SPOT",
	E533: "THAT VALUE IS TOO BIG FOR ITS SPOTS",
	E555: "FLOW CONTROL FLEW OUT THE WINDOW",
	E621: "YOU CAN'T RESUME ZERO LEVELS",
	E632: "YOU CAN'T RESUME THIS FAR BACK",
	E633: "PROGRAM FELL OFF THE END",
	E774: "THAT WAS PROBABLY A COMPILER BUG",
	E778: "HACK, HACK, HACK",
	E993: "TRY AGAIN IS ONLY ALLOWED AS THE LAST STATEMENT",
	E997: "YOU CAN'T DO THAT TO SOMETHING YOU'RE IGNORING",
}

var classes = map[Code]Class{
	E079: CompileTime,
	E099: CompileTime,
	E182: CompileTime,
}

// Message returns the canonical human-readable text for the code.
func (c Code) Message() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return "UNKNOWN ERROR"
}

// Class reports whether the code is, by default, a compile-time rejection.
// E079/E099/E182 are CompileTime; every other code is Runtime. The class
// is fixed per code: no method re-classifies a code by where it is raised.
func (c Code) Class() Class {
	if cl, ok := classes[c]; ok {
		return cl
	}
	return Runtime
}

// String renders the canonical "ICLnnnI" form used in stderr and in the
// end-to-end scenarios of spec.md §8 ("stderr contains ICL275I").
func (c Code) String() string {
	return fmt.Sprintf("ICL%03dI", int(c))
}
