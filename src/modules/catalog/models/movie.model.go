package catalog

type Movie struct {
	Record
	Movie string `json:"movie"`
}

func (*Movie) Kind() Kind {
	return KindMovie
}

func (Movie) TableName() string {
	return "movies"
}
