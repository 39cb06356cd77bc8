package cli

import (
	"context"
	"fmt"

	"github.com/imnyang/newsletter/internal"
)

// Represents the 'newsletter version' command.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Println(internal.VersionString())
	return nil
}
