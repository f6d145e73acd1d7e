package builtin

import (
	"fmt"
	"os"
)

func createFile(args string) string {
	path, _ := stringField(args, "path")
	content, _ := stringField(args, "content")
	if path == "" {
		return "Error: 'path' is required"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Sprintf("Error writing file: %s", err)
	}
	return fmt.Sprintf("Successfully created/written to %s", path)
}

// updateFile appends to an existing file. It never creates one.
func updateFile(args string) string {
	path, _ := stringField(args, "path")
	content, _ := stringField(args, "content")
	if path == "" {
		return "Error: 'path' is required"
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Sprintf("Error opening file: %s", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return fmt.Sprintf("Error writing to file: %s", err)
	}
	return fmt.Sprintf("Successfully updated %s", path)
}

func deleteFile(args string) string {
	path := fieldOrRaw(args, "path")
	if path == "" {
		return "Error: 'path' is required"
	}
	if err := os.Remove(path); err != nil {
		return fmt.Sprintf("Error deleting file: %s", err)
	}
	return fmt.Sprintf("Successfully deleted %s", path)
}
