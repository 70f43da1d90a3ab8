package sqlite

// Type is the storage class of a value: the representation sqlite actually
// stores, independent of the column's declared type.
type Type int

const (
	TypeInteger Type = 1
	TypeFloat   Type = 2
	TypeText    Type = 3
	TypeBlob    Type = 4
	TypeNull    Type = 5
)

func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeText:
		return "text"
	case TypeBlob:
		return "blob"
	case TypeNull:
		return "null"
	}
	return "unknown"
}
