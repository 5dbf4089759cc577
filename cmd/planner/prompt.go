package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errNoInput is returned when the input stream ends before a valid answer.
var errNoInput = errors.New("no more input")

// prompter asks questions on out and reads answers from in, asking again
// until the answer is valid.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) line(question string) (string, error) {
	fmt.Fprint(p.out, question)
	s, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		if err == io.EOF {
			return "", errNoInput
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// number asks for a whole number no smaller than least.
func (p *prompter) number(question string, least int) (int, error) {
	for {
		s, err := p.line(question)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input, please enter a whole number.")
			continue
		}
		if n < least {
			fmt.Fprintf(p.out, "The number must be at least %d.\n", least)
			continue
		}
		return n, nil
	}
}

// yesNo accepts yes or no in any case.
func (p *prompter) yesNo(question string) (bool, error) {
	for {
		s, err := p.line(question)
		if err != nil {
			return false, err
		}
		if v, ok := parseYesNo(s); ok {
			return v, nil
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}

func parseYesNo(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return true, true
	case "no":
		return false, true
	}
	return false, false
}

// gaps asks for one non-negative gap per platform.
func (p *prompter) gaps(platforms int) ([]int, error) {
	out := make([]int, 0, platforms)
	for i := 1; i <= platforms; i++ {
		g, err := p.number(fmt.Sprintf("Enter platform gap %d after the first order: ", i), 0)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}
