// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

// ExampleYAML is a complete run definition, printed by the config command.
const ExampleYAML = `name: lighting pass
description: Apply the studio light rig and render setup to every shot.
scripts:
  - scripts/light_rig.ms
  - scripts/render_setup.ms
targets:
  - shots/sh010.max
  - shots/sh020.max
list_files:
  - lists/extra_shots.txt
save_after_each: true
host:
  load:
    path: /opt/host/bin/hostcli
    args: ["--open", "{{.Target}}"]
  run:
    path: /opt/host/bin/hostcli
    args: ["--open", "{{.Target}}", "--script", "{{.Script}}"]
    abort_exit_codes: [3]
  save:
    path: /opt/host/bin/hostcli
    args: ["--open", "{{.Target}}", "--save"]
`

// ExampleHCL is ExampleYAML in HCL syntax.
const ExampleHCL = `name        = "lighting pass"
description = "Apply the studio light rig and render setup to every shot."
scripts     = ["scripts/light_rig.ms", "scripts/render_setup.ms"]
targets     = ["shots/sh010.max", "shots/sh020.max"]
list_files  = ["lists/extra_shots.txt"]

save_after_each = true

host {
  load {
    path = "/opt/host/bin/hostcli"
    args = ["--open", "{{.Target}}"]
  }

  run {
    path             = "/opt/host/bin/hostcli"
    args             = ["--open", "{{.Target}}", "--script", "{{.Script}}"]
    abort_exit_codes = [3]
  }

  save {
    path = "/opt/host/bin/hostcli"
    args = ["--open", "{{.Target}}", "--save"]
  }
}
`
