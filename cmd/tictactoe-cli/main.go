package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/render"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const help = "Enter a cell 1-9, r to reset, q to quit."

func main() {
	if err := run(os.Stdin, os.Stdout, render.ForOutput(os.Stdout)); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, renderer *render.Renderer) error {
	store := tictactoe.NewStore()

	var renderErr error
	draw := func(snapshot entity.Snapshot) {
		if renderErr == nil {
			renderErr = renderer.Render(out, snapshot)
		}
	}
	store.Subscribe(draw)

	fmt.Fprintln(out, help)
	draw(store.Snapshot())

	scanner := bufio.NewScanner(in)
	for {
		if renderErr != nil {
			return fmt.Errorf("failed to render: %w", renderErr)
		}

		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(input) {
		case "":
			continue
		case "q", "quit":
			return nil
		case "r", "reset":
			store.Reset()
			continue
		}

		number, err := strconv.Atoi(input)
		if err != nil || number < 1 || number > entity.BoardSize {
			fmt.Fprintln(out, help)
			continue
		}

		if !store.Play(number - 1) {
			fmt.Fprintf(out, "Cell %d is not playable. %s\n", number, store.Snapshot().StatusText())
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}
