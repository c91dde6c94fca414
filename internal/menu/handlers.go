package menu

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"plate_sales/internal/plates"
	"plate_sales/internal/shop"
	"plate_sales/internal/users"
)

// describe turns an error returned by a handler into the message shown
// to the operator.
func describe(err error) string {
	switch {
	case errors.Is(err, shop.ErrNoCurrentUser):
		return "You are not registered. Please register first."
	case errors.Is(err, shop.ErrAlreadyRegistered):
		return "You are already registered!"
	case errors.Is(err, shop.ErrPlateNotFound), errors.Is(err, plates.ErrNotFound):
		return "Plate not found!"
	case errors.Is(err, shop.ErrPlateNotAvailable):
		return "Plate is not available!"
	case errors.Is(err, shop.ErrBuyerNotFound), errors.Is(err, users.ErrNotFound):
		return "User not found!"
	case errors.Is(err, plates.ErrDuplicateID), errors.Is(err, users.ErrDuplicateID):
		return "That ID is already taken!"
	case errors.Is(err, plates.ErrInvalidTransition):
		return "A sold plate cannot be made available again!"
	case errors.Is(err, shop.ErrInvalidInput),
		errors.Is(err, plates.ErrInvalidInput),
		errors.Is(err, users.ErrInvalidInput):
		return fmt.Sprintf("Invalid input: %v", err)
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}

func (m *Menu) handleProfile() error {
	user, err := m.shop.CurrentUser()
	if err != nil {
		return err
	}

	m.println("===== My Profile =====")
	m.printf("User ID: %s\n", user.ID)
	m.printf("Name: %s\n", user.Name)
	m.printf("Address: %s\n", user.Address)
	if history := user.PurchaseHistory(); len(history) > 0 {
		m.println("Purchased plates:")
		for _, p := range history {
			m.printf("  %s\n", p.Number)
		}
	}
	for _, sale := range m.shop.SalesByUser(user.ID) {
		d := sale.Details()
		m.printf("  Sale #%d: %s on %s\n", d.SaleID, d.PlateNumber, d.Date.Format("2006-01-02 15:04"))
	}
	m.println("======================")
	m.println("1. Update Profile")
	m.println("2. Back to Main Menu")

	choice, err := m.prompt("Enter your choice: ")
	if err != nil || choice != "1" {
		return err
	}

	var patch users.ProfilePatch
	name, err := m.prompt(fmt.Sprintf("Enter new name (%s): ", user.Name))
	if err != nil {
		return err
	}
	if name != "" {
		patch.Name = &name
	}
	address, err := m.prompt(fmt.Sprintf("Enter new address (%s): ", user.Address))
	if err != nil {
		return err
	}
	if address != "" {
		patch.Address = &address
	}

	if _, err := m.shop.UpdateProfile(patch); err != nil {
		return err
	}
	m.println("Profile updated successfully!")
	return nil
}

func (m *Menu) handleRegister() error {
	if _, err := m.shop.CurrentUser(); err == nil {
		return shop.ErrAlreadyRegistered
	}

	m.println("====== Register =====")
	id, name, address, err := m.promptUser("Enter your User ID (blank to generate): ", "Enter your Name: ", "Enter your Address: ")
	if err != nil {
		return err
	}

	user, err := m.shop.Register(id, name, address)
	if err != nil {
		return err
	}
	m.printf("Registration successful! Your User ID is %s\n", user.ID)
	return nil
}

func (m *Menu) handleCreateUser() error {
	m.println("====== Create New User =====")
	id, name, address, err := m.promptUser("Enter User ID (blank to generate): ", "Enter Name: ", "Enter Address: ")
	if err != nil {
		return err
	}

	user, err := m.shop.CreateUser(id, name, address)
	if err != nil {
		return err
	}
	m.printf("User %s created successfully!\n", user.ID)
	return nil
}

func (m *Menu) handleListUsers() error {
	m.println("===== Users List ======")
	list := m.shop.Users.List()
	if len(list) == 0 {
		m.println("No users available.")
		return nil
	}
	for _, u := range list {
		m.printf("ID: %s, Name: %s, Address: %s\n", u.ID, u.Name, u.Address)
	}
	return nil
}

func (m *Menu) handleListPlates() error {
	list := m.shop.Plates.List()
	if len(list) == 0 {
		m.println("No license plates available yet.")
		return nil
	}
	m.println("License Plates:")
	for _, p := range list {
		m.println(m.formatPlate(p))
	}
	return nil
}

func (m *Menu) handleAddPlate() error {
	m.println("Add New License Plate")
	id, err := m.prompt("Enter Plate ID (blank to generate): ")
	if err != nil {
		return err
	}
	if id == "" {
		id = uuid.NewString()
	}
	number, err := m.prompt("Enter Plate Number: ")
	if err != nil {
		return err
	}
	rawPrice, err := m.prompt("Enter Price: ")
	if err != nil {
		return err
	}
	price, err := parsePrice(rawPrice)
	if err != nil {
		return err
	}

	if err := m.shop.Plates.Add(plates.New(id, number, price)); err != nil {
		return err
	}
	m.printf("License Plate %s added successfully!\n", id)
	return nil
}

func (m *Menu) handleEditPlate() error {
	m.println("Edit License Plate")
	id, err := m.prompt("Enter Plate ID to edit: ")
	if err != nil {
		return err
	}
	plate, err := m.shop.Plates.FindByID(id)
	if err != nil {
		return err
	}

	m.printf("Editing Plate: %s\n", plate.Number)
	var patch plates.Patch
	number, err := m.prompt(fmt.Sprintf("Enter new number (%s): ", plate.Number))
	if err != nil {
		return err
	}
	if number != "" {
		patch.Number = &number
	}
	rawPrice, err := m.prompt(fmt.Sprintf("Enter new price (%s): ", plate.Price.StringFixed(2)))
	if err != nil {
		return err
	}
	if rawPrice != "" {
		price, err := parsePrice(rawPrice)
		if err != nil {
			return err
		}
		patch.Price = &price
	}
	rawStatus, err := m.prompt(fmt.Sprintf("Enter new status (%s): ", plate.Status))
	if err != nil {
		return err
	}
	if rawStatus != "" {
		status, err := plates.ParseStatus(rawStatus)
		if err != nil {
			return err
		}
		patch.Status = &status
	}

	if _, err := m.shop.Plates.Edit(id, patch); err != nil {
		return err
	}
	m.println("License Plate updated successfully!")
	return nil
}

func (m *Menu) handleDeletePlate() error {
	m.println("Delete License Plate")
	id, err := m.prompt("Enter Plate ID to delete: ")
	if err != nil {
		return err
	}
	if m.shop.Plates.Delete(id) {
		m.println("License Plate deleted successfully!")
	} else {
		m.println("No license plate with that ID, nothing deleted.")
	}
	return nil
}

func (m *Menu) handleRecordSale() error {
	m.println("===== Record a Sale =====")
	available := 0
	for p := range m.shop.Plates.ListAvailable() {
		if available == 0 {
			m.println("Available plates:")
		}
		m.println("  " + m.formatPlate(p))
		available++
	}
	if available == 0 {
		m.println("No plates are available for sale.")
	}

	plateID, err := m.prompt("Enter Plate ID: ")
	if err != nil {
		return err
	}
	plate, err := m.shop.Plates.FindByID(plateID)
	if err != nil {
		return fmt.Errorf("%w: %w", shop.ErrPlateNotFound, err)
	}
	if !plate.IsAvailable() {
		return shop.ErrPlateNotAvailable
	}

	m.println("\nWho is buying this plate?")
	m.println("1. Buy for myself")
	m.println("2. Buy for an existing user")
	m.println("3. Create a new user and buy for them")
	choice, err := m.prompt("Enter your choice: ")
	if err != nil {
		return err
	}

	var buyer shop.Buyer
	switch choice {
	case "1":
		buyer.Mode = shop.BuyerSelf
	case "2":
		buyer.Mode = shop.BuyerExisting
		if buyer.ID, err = m.prompt("Enter the existing User ID: "); err != nil {
			return err
		}
	case "3":
		buyer.Mode = shop.BuyerNew
		if buyer.ID, buyer.Name, buyer.Address, err = m.promptUser("Enter new User ID (blank to generate): ", "Enter new User Name: ", "Enter new User Address: "); err != nil {
			return err
		}
	default:
		m.println("Invalid choice!")
		return nil
	}

	sale, err := m.shop.Sell(plateID, buyer)
	if err != nil {
		return err
	}
	if buyer.Mode == shop.BuyerNew {
		m.println("New user created successfully!")
	}
	m.printf("Sale recorded successfully! Sale ID: %d\n", sale.ID)
	m.logger.Debug("sale confirmed", zap.Any("details", sale.Details()))
	return nil
}

func (m *Menu) handleStatistics() error {
	m.println("Sales Statistics")
	stats := m.shop.Statistics()
	m.printf("Total Sales: %d\n", stats.TotalSales)
	m.printf("Total Revenue: %s%s\n", m.currency, stats.TotalRevenue.StringFixed(2))
	return nil
}

// promptUser asks for the fields of a new user. A blank ID is replaced
// with a generated one.
func (m *Menu) promptUser(idLabel, nameLabel, addressLabel string) (id, name, address string, err error) {
	if id, err = m.prompt(idLabel); err != nil {
		return "", "", "", err
	}
	if id == "" {
		id = uuid.NewString()
	}
	if name, err = m.prompt(nameLabel); err != nil {
		return "", "", "", err
	}
	if address, err = m.prompt(addressLabel); err != nil {
		return "", "", "", err
	}
	return id, name, address, nil
}

func (m *Menu) formatPlate(p *plates.Plate) string {
	return fmt.Sprintf("ID: %s, Number: %s, Price: %s%s, Status: %s", p.ID, p.Number, m.currency, p.Price.StringFixed(2), p.Status)
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: price %q is not a number", shop.ErrInvalidInput, raw)
	}
	return price, nil
}
