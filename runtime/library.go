package runtime

var preludeForms = []string{
	`(def {nil} {})`,
	`(def {true false} 1 0)`,
}
