//spellchecker:words progress
package progress_test

//spellchecker:words strings github rdfadmin progress
import (
	"fmt"
	"io"
	"strings"

	"github.com/FAU-CDI/rdfadmin/pkg/progress"
)

func ExampleReader() {
	var builder strings.Builder

	reader := &progress.Reader{
		Reader: strings.NewReader("<http://ex.org/s> <http://ex.org/p> \"o\" .\n"),

		Rewritable: &progress.Rewritable{
			FlushInterval: 0,
			Writer:        &builder,
		},
	}

	_, _ = io.ReadAll(reader)

	// replace all the '\r's with '\n's for testing
	fmt.Println(strings.TrimSpace(strings.ReplaceAll(builder.String(), "\r", "\n")))

	// Output: Read 42 B
	// Read 42 B
}

func ExampleRewritable() {
	var builder strings.Builder
	rewritable := &progress.Rewritable{Writer: &builder}

	rewritable.Write("long content")
	rewritable.Write("short")
	rewritable.Close()

	fmt.Printf("%q", builder.String())

	// Output: "\rlong content\rshort       \r            \r"
}

func ExampleReader_total() {
	var builder strings.Builder

	reader := &progress.Reader{
		Reader: strings.NewReader("<http://ex.org/s> <http://ex.org/p> \"o\" .\n"),
		Total:  84,

		Rewritable: &progress.Rewritable{Writer: &builder},
	}

	_, _ = io.ReadAll(reader)
	fmt.Println(reader)

	// Output: Read 42 B of 84 B (50%)
}

func ExampleRewritable_runes() {
	var builder strings.Builder
	rewritable := &progress.Rewritable{Writer: &builder}

	rewritable.Write("Zürich")
	rewritable.Write("Ulm")
	rewritable.Close()

	fmt.Printf("%q", builder.String())

	// Output: "\rZürich\rUlm   \r      \r"
}
