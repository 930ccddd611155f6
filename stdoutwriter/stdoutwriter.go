package stdoutwriter

import "fmt"

// Logger writes log records to the standard output, one per line.
type Logger struct{}

func (l Logger) Write(p []byte) (n int, err error) {
	fmt.Println(string(p))
	return len(p), nil
}
