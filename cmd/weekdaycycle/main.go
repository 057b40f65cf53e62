package main

import (
	"os"

	"WeekdayCycle/cmd/weekdaycycle/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
