package teetime

type Tournament struct {
	Name string `json:"name"`
	Days []Day  `json:"days"`
}

type Day struct {
	Name  string `json:"day"`
	Slots []Slot `json:"slots"`
}

func (t *Tournament) Day(name string) (*Day, bool) {
	for i := range t.Days {
		if t.Days[i].Name == name {
			return &t.Days[i], true
		}
	}
	return nil, false
}
