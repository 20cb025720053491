package main

import (
	"os"

	skaldcmder "github.com/useskald/skald-go/cmd/skald"
)

func main() {
	cmd := skaldcmder.NewSkaldCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
