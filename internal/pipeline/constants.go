package pipeline

// Step grammar separators: name:key=value,key=value
const (
	nameSeparator  = ":"
	paramSeparator = ","
	valueSeparator = "="
)

// defaultParamCapacity is the initial capacity for parameter key order.
const defaultParamCapacity = 4
