package marshal_test

import (
	"fmt"

	"field-marshaller/fields"
	"field-marshaller/marshal"
)

func ExampleMarshal() {
	type user struct {
		Name  string
		Age   any
		Email string
	}

	table := marshal.NewTable(
		marshal.E("name", fields.Str()),
		marshal.E("age", fields.Int()),
		marshal.E("email", fields.Email()),
	)

	users := []user{
		{Name: "Ada", Age: 36, Email: "ada@example.com"},
		{Name: "Bob", Age: "unknown", Email: "bob@example.com"},
	}

	res, err := marshal.Marshal(users, table, true, marshal.WithMetrics(false))
	if err != nil {
		panic(err)
	}

	for _, m := range res.Many {
		data, _ := m.MarshalJSON()
		fmt.Println(string(data))
	}

	fmt.Println(res.Report.Err())

	// Output:
	// {"name":"Ada","age":36,"email":"ada@example.com"}
	// {"name":"Bob","email":"bob@example.com"}
	// 1.age: Not a valid integer.
}
