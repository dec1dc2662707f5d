package explorer

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Runs the main interactive loop
func (e *Explorer) Interact() {
	fmt.Printf("%s", e.header())
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s", e.status())
		actions := e.listActions()

		fmt.Printf("> ")
		optionS, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("Invalid input! Try again")
			continue
		}
		option := strings.TrimSpace(optionS)
		fmt.Println("------------------------------------")

		switch option {
		case "q":
			return
		case "r":
			if err := e.reset(); err != nil {
				fmt.Printf("reset failed: %v\n", err)
				return
			}
			fmt.Println("episode reset")
		default:
			number, err := strconv.Atoi(option)
			if err != nil {
				fmt.Println("Invalid input! Not a number. Try again")
				continue
			}
			if number < 1 || number > len(actions) {
				fmt.Printf("Invalid input! Pick an action between 1 and %d\n", len(actions))
				continue
			}
			e.step(actions[number-1])
		}
	}
}
