package text_test

import (
	"fmt"

	"github.com/walteh/transformpoc/pkg/text"
)

func ExampleRules_Apply() {
	rules := text.Rules{
		text.WholeWord("engines.EngineGas", "projects.ProjectProject1"),
		text.WholeWord("engines", "projects"),
	}

	out, n := rules.Apply("import com.example.engines.EngineGas; // see engines")

	fmt.Println(out)
	fmt.Println(n)

	// Output:
	// import com.example.projects.ProjectProject1; // see projects
	// 2
}
