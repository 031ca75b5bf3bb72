// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package pattern

import "os"

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
