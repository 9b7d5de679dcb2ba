// Package views holds the demo back office shown by the viewmenu binary.
package views

import (
	"fmt"
	"strings"

	"github.com/atomicstack/viewmenu/internal/menu"
)

type HomeView struct{}

func (*HomeView) Route() string { return "home" }
func (*HomeView) MenuItem() menu.Descriptor {
	return menu.Descriptor{Title: "menu.home", Order: menu.OrderBeginning, Icon: menu.IconHome}
}
func (*HomeView) Content() string { return "Welcome back." }

// DashboardView overrides its descriptor icon at runtime.
type DashboardView struct {
	Starred bool
}

func (*DashboardView) Route() string { return "dashboard" }
func (*DashboardView) MenuItem() menu.Descriptor {
	return menu.Descriptor{Title: "menu.dashboard", Order: 10, Icon: menu.IconChart}
}
func (v *DashboardView) CustomIcon() (menu.Icon, error) {
	if v.Starred {
		return menu.IconStar, nil
	}
	return "", nil
}
func (*DashboardView) Content() string { return "3 open orders, 1 pending refund." }

// CustomerListView is routed by naming convention to customer-list.
type CustomerListView struct {
	Customers []string
}

func (*CustomerListView) Route() string { return menu.UseConventions }
func (*CustomerListView) MenuItem() menu.Descriptor {
	return menu.Descriptor{Title: "menu.customers", Order: 20, Icon: menu.IconUsers}
}
func (v *CustomerListView) Content() string {
	if len(v.Customers) == 0 {
		return "No customers."
	}
	return strings.Join(v.Customers, "\n")
}

// ReportsView has no title key; its label comes from the type name.
type ReportsView struct{}

func (*ReportsView) Route() string             { return "reports" }
func (*ReportsView) MenuItem() menu.Descriptor { return menu.Descriptor{Order: 20, Icon: menu.IconList} }
func (*ReportsView) Content() string           { return "No reports scheduled." }

type FAQView struct{}

func (*FAQView) Route() string { return "faq" }
func (*FAQView) MenuItem() menu.Descriptor {
	return menu.Descriptor{Title: "menu.faq", Order: 90, Icon: menu.IconQuestion}
}
func (*FAQView) Content() string { return "Press tab to collapse the menu." }

type AboutView struct{}

func (*AboutView) Route() string { return "about" }
func (*AboutView) MenuItem() menu.Descriptor {
	return menu.Descriptor{Title: "menu.about", Order: menu.OrderEnd, Icon: menu.IconInfo}
}
func (*AboutView) Content() string { return "viewmenu demo" }

// SettingsView is registered but hidden from the menu.
type SettingsView struct{}

func (*SettingsView) Route() string             { return "settings" }
func (*SettingsView) MenuItem() menu.Descriptor { return menu.Descriptor{Disabled: true, Icon: menu.IconCog} }
func (*SettingsView) Content() string           { return "Settings" }

// AuditLogView is reachable by route only.
type AuditLogView struct{}

func (*AuditLogView) Route() string   { return "audit-log" }
func (*AuditLogView) Content() string { return "Audit log is empty." }

// Registry returns the demo view set.
func Registry() *menu.ViewRegistry {
	reg := menu.NewViewRegistry()
	reg.Register(func() menu.View { return &HomeView{} })
	reg.Register(func() menu.View { return &DashboardView{Starred: true} })
	reg.Register(func() menu.View {
		return &CustomerListView{Customers: []string{"Ada Lovelace", "Grace Hopper", "Alan Turing"}}
	})
	reg.Register(func() menu.View { return &ReportsView{} })
	reg.Register(func() menu.View { return &FAQView{} })
	reg.Register(func() menu.View { return &AboutView{} })
	reg.Register(func() menu.View { return &SettingsView{} })
	reg.Register(func() menu.View { return &AuditLogView{} })
	return reg
}

// BackOfficeUI hosts the menu. Its menu title is detected from the type
// name.
type BackOfficeUI struct{}

// UserBadge is the secondary component shown under the title.
type UserBadge struct {
	User string
}

func (b *UserBadge) Render() string {
	return fmt.Sprintf("signed in as %s", b.User)
}
