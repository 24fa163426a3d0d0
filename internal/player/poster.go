package player

// Poster returns the output of every frame strictly before t, independent
// of the playback position.
func (d *Driver) Poster(t float64) ([]string, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}
	return d.table.Poster(t), nil
}
