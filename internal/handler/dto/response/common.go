package response

import (
	"fmt"
	"log/slog"

	"github.com/jinzhu/copier"
)

// copyInto fills a response from a view whose fields share its names.
func copyInto[T any](src any) *T {
	var dst T
	if err := copier.Copy(&dst, src); err != nil {
		slog.Error("response mapping failed", "target", fmt.Sprintf("%T", dst), "error", err)
	}
	return &dst
}
