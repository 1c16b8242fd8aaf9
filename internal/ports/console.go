package ports

// Console is the line-oriented text capability used to obtain a message to
// send and to display a received one.
type Console interface {
	// ReadLine prints the prompt (without a trailing newline) and blocks
	// until a full line of input is available. It returns
	// domain.ErrConsoleClosed once the input stream ends.
	ReadLine(prompt string) (string, error)

	// WriteLine displays one line of output.
	WriteLine(line string) error
}
