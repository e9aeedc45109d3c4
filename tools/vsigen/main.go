// Copyright 2025 Google LLC
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


// vsigen turns natural language network test procedures into VSI, forwarder
// and traffic configuration.
//
// Usage:
//
//	vsigen generate "Configure a 1:1 VSI for line 3"
//	vsigen extract --format yaml -f procedure.txt
//	vsigen batch plan.md
//	vsigen serve --port 5000
//	vsigen shell
package main

import "github.com/openconfig/vsigen/tools/vsigen/cmd"

func main() {
	cmd.Execute()
}
