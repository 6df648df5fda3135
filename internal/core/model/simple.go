package model

// Person, Company, Character and Award carry nothing beyond their identity.

type Person struct{ Identity }

type Company struct{ Identity }

type Character struct{ Identity }

type Award struct{ Identity }

func (p *Person) Kind() Kind    { return KindPerson }
func (c *Company) Kind() Kind   { return KindCompany }
func (c *Character) Kind() Kind { return KindCharacter }
func (a *Award) Kind() Kind     { return KindAward }

func (p *Person) Children() []Child    { return nil }
func (c *Company) Children() []Child   { return nil }
func (c *Character) Children() []Child { return nil }
func (a *Award) Children() []Child     { return nil }

func (p *Person) Prepare()    { p.Identity.prepare() }
func (c *Company) Prepare()   { c.Identity.prepare() }
func (c *Character) Prepare() { c.Identity.prepare() }
func (a *Award) Prepare()     { a.Identity.prepare() }

func (p *Person) Validate()    { p.Identity.validate() }
func (c *Company) Validate()   { c.Identity.validate() }
func (c *Character) Validate() { c.Identity.validate() }
func (a *Award) Validate()     { a.Identity.validate() }

func (p *Person) Params(func() string) map[string]interface{} { return p.Identity.params() }
func (c *Company) Params(func() string) map[string]interface{} { return c.Identity.params() }
func (c *Character) Params(func() string) map[string]interface{} { return c.Identity.params() }
func (a *Award) Params(func() string) map[string]interface{} { return a.Identity.params() }

func (i *Identity) prepare() {
	trim(&i.Name, &i.Differentiator)
}

// validate checks a root identity: the name is always required.
func (i *Identity) validate() {
	validateString(&i.Errors, "name", i.Name, true)
	validateString(&i.Errors, "differentiator", i.Differentiator, false)
}

func (i *Identity) params() map[string]interface{} {
	return map[string]interface{}{
		"uuid":  i.UUID,
		"props": identityProps(i),
	}
}
