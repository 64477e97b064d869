/*
Package dsl provides a fluent Go API for constructing machine definitions without
YAML, TOML or JSON files.

Example:

	b := dsl.New("even-a").Describe("even number of a").Accept(0)
	b.From(0).On("a").Keep().Move(domain.Right).To(1)
	b.From(1).On("a").Keep().Move(domain.Right).To(0)

	m, err := b.Compile()
	if err != nil {
		return err
	}
	accepted, err := m.Run("aaaa")

Build returns a memory loader instead, ready for a runner.Runner.
*/
package dsl
