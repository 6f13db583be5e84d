package push

import "encoding/json"

// MarshalJSON сливает Extra с известными полями
func (d Data) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+4)
	for k, v := range d.Extra {
		out[k] = v
	}
	if d.Alert != "" {
		out["alert"] = d.Alert
	}
	if d.Title != "" {
		out["title"] = d.Title
	}
	if d.Badge != "" {
		out["badge"] = d.Badge
	}
	if d.Sound != "" {
		out["sound"] = d.Sound
	}
	return json.Marshal(out)
}

func (d *Data) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d.Alert, _ = raw["alert"].(string)
	d.Title, _ = raw["title"].(string)
	d.Badge, _ = raw["badge"].(string)
	d.Sound, _ = raw["sound"].(string)
	for _, k := range []string{"alert", "title", "badge", "sound"} {
		delete(raw, k)
	}
	if len(raw) > 0 {
		d.Extra = raw
	}
	return nil
}
