// MODUL: pipeline
// ZWECK: Verkettet Resize -> Center-Crop -> Normalisierung in fester Reihenfolge
// INPUT: *Image
// OUTPUT: *Image der Form (Crop.Height, Crop.Width, C) oder das Eingabebild (Passthrough)
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: resize.go, crop.go, normalize.go, options.go
// HINWEISE: Fail-fast, der erste Fehler wird als *StageError zurueckgegeben

package vision

// Pipeline ist eine unveraenderliche, konfigurierte Vorverarbeitung.
// Sie haelt keinen Zustand zwischen Aufrufen und kann parallel benutzt werden.
type Pipeline struct {
	opts Options
}

// NewPipeline erstellt eine Pipeline aus DefaultOptions und den uebergebenen Options.
func NewPipeline(opts ...Option) (*Pipeline, error) {
	o := DefaultOptions()
	o.Apply(opts...)

	if err := o.Validate(); err != nil {
		return nil, err
	}

	o.Means = append(ChannelMeans(nil), o.Means...)
	return &Pipeline{opts: o}, nil
}

// Options gibt eine Kopie der Konfiguration zurueck
func (p *Pipeline) Options() Options {
	o := p.opts
	o.Means = append(ChannelMeans(nil), p.opts.Means...)
	return o
}

// Mode gibt den konfigurierten Modus zurueck
func (p *Pipeline) Mode() Mode {
	return p.opts.Mode
}

// OutputShape gibt die feste Ausgabeform (H, W, C) im Normalize-Modus zurueck.
// Im Passthrough-Modus haengt die Form vom Eingabebild ab, dann ist das Ergebnis nil.
func (p *Pipeline) OutputShape() []int {
	if p.opts.Mode != ModeNormalize {
		return nil
	}
	return []int{p.opts.Crop.Height, p.opts.Crop.Width, len(p.opts.Means)}
}

// Process fuehrt die Vorverarbeitung aus.
// Im Passthrough-Modus wird das Eingabebild selbst zurueckgegeben.
func (p *Pipeline) Process(img *Image) (*Image, error) {
	if p.opts.Mode == ModePassthrough {
		if err := img.Validate(); err != nil {
			return nil, &StageError{Stage: StageLoad, Err: err}
		}
		return img, nil
	}

	resized, err := Resize(img, p.opts.Resize)
	if err != nil {
		return nil, &StageError{Stage: StageResize, Err: err}
	}

	cropped, err := CenterCrop(resized, p.opts.Crop)
	if err != nil {
		return nil, &StageError{Stage: StageCrop, Err: err}
	}

	normalized, err := Normalize(cropped, p.opts.Means)
	if err != nil {
		return nil, &StageError{Stage: StageNormalize, Err: err}
	}

	return normalized, nil
}
