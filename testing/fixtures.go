// Package testing provides test utilities and database setup for testing the weighing-station system
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Davisit00/aviges/models"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestAddress creates an address with randomized sector
func (tf *TestFixtures) CreateTestAddress() (*models.Address, error) {
	address := &models.Address{
		Country:      "Venezuela",
		State:        "Aragua",
		Municipality: "Girardot",
		Sector:       fmt.Sprintf("Sector %d", rand.Intn(1000000)),
	}

	if err := tf.DB.DB.Create(address).Error; err != nil {
		return nil, fmt.Errorf("failed to create test address: %w", err)
	}
	return address, nil
}

// CreateTestPerson creates a person with a random national id
func (tf *TestFixtures) CreateTestPerson() (*models.Person, error) {
	address, err := tf.CreateTestAddress()
	if err != nil {
		return nil, err
	}

	person := &models.Person{
		AddressID:      address.ID,
		FirstName:      "Maria",
		LastName:       "Gonzalez",
		NationalIDType: models.NationalIDTypeVenezuelan,
		NationalID:     fmt.Sprintf("%08d", rand.Intn(90000000)+10000000),
	}

	if err := tf.DB.DB.Create(person).Error; err != nil {
		return nil, fmt.Errorf("failed to create test person: %w", err)
	}
	return person, nil
}

// CreateTestUser creates an operator account with the given role name
func (tf *TestFixtures) CreateTestUser(roleName string) (*models.User, error) {
	var role models.Role
	if err := tf.DB.DB.Where("name = ? AND is_deleted = false", roleName).First(&role).Error; err != nil {
		return nil, fmt.Errorf("failed to find role %s: %w", roleName, err)
	}

	person, err := tf.CreateTestPerson()
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		PersonID:     person.ID,
		RoleID:       role.ID,
		Username:     fmt.Sprintf("operator%d", rand.Intn(10000000)),
		PasswordHash: string(hashedPassword),
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}
	return user, nil
}

// CreateTestProduct creates a product with a random code
func (tf *TestFixtures) CreateTestProduct() (*models.Product, error) {
	product := &models.Product{
		Code: fmt.Sprintf("P%06d", rand.Intn(1000000)),
		Name: "Live Birds",
	}

	if err := tf.DB.DB.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create test product: %w", err)
	}
	return product, nil
}

// CreateTestLocation creates a location of the given kind
func (tf *TestFixtures) CreateTestLocation(locationType string) (*models.Location, error) {
	address, err := tf.CreateTestAddress()
	if err != nil {
		return nil, err
	}

	location := &models.Location{
		AddressID: address.ID,
		Name:      fmt.Sprintf("Site %d", rand.Intn(10000000)),
		Type:      locationType,
	}

	if err := tf.DB.DB.Create(location).Error; err != nil {
		return nil, fmt.Errorf("failed to create test location: %w", err)
	}
	return location, nil
}

// CreateTestTransportCompany creates a transport company
func (tf *TestFixtures) CreateTestTransportCompany() (*models.TransportCompany, error) {
	address, err := tf.CreateTestAddress()
	if err != nil {
		return nil, err
	}

	company := &models.TransportCompany{
		AddressID: address.ID,
		Name:      fmt.Sprintf("Transportes %d CA", rand.Intn(10000000)),
	}

	if err := tf.DB.DB.Create(company).Error; err != nil {
		return nil, fmt.Errorf("failed to create test transport company: %w", err)
	}
	return company, nil
}

// CreateTestVehicle creates a vehicle for the given company
func (tf *TestFixtures) CreateTestVehicle(companyID uint) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{
		TransportCompanyID: companyID,
		Plate:              fmt.Sprintf("A%02dBC%02dD", rand.Intn(100), rand.Intn(100)),
		Model:              "Ford Cargo 1721",
	}

	if err := tf.DB.DB.Create(vehicle).Error; err != nil {
		return nil, fmt.Errorf("failed to create test vehicle: %w", err)
	}
	return vehicle, nil
}

// CreateTestDriver creates a driver employed by the given company
func (tf *TestFixtures) CreateTestDriver(companyID uint) (*models.Driver, error) {
	person, err := tf.CreateTestPerson()
	if err != nil {
		return nil, err
	}

	driver := &models.Driver{
		PersonID:           person.ID,
		TransportCompanyID: companyID,
	}

	if err := tf.DB.DB.Create(driver).Error; err != nil {
		return nil, fmt.Errorf("failed to create test driver: %w", err)
	}
	return driver, nil
}

// CreateTestFarmWithBatch creates a farm with one shed and one placed batch
func (tf *TestFixtures) CreateTestFarmWithBatch() (*models.Farm, *models.Batch, error) {
	owner, err := tf.CreateTestPerson()
	if err != nil {
		return nil, nil, err
	}
	address, err := tf.CreateTestAddress()
	if err != nil {
		return nil, nil, err
	}

	farm := &models.Farm{
		OwnerPersonID: owner.ID,
		AddressID:     address.ID,
		Name:          fmt.Sprintf("Granja %d", rand.Intn(10000000)),
	}
	if err := tf.DB.DB.Create(farm).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create test farm: %w", err)
	}

	shed := &models.Shed{
		FarmID: farm.ID,
		Number: 1,
	}
	if err := tf.DB.DB.Create(shed).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create test shed: %w", err)
	}

	batch := &models.Batch{
		ShedID:        shed.ID,
		Code:          fmt.Sprintf("B%07d", rand.Intn(10000000)),
		PlacementDate: time.Now().UTC().AddDate(0, 0, -42),
		BirdsPlaced:   20000,
	}
	if err := tf.DB.DB.Create(batch).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create test batch: %w", err)
	}

	return farm, batch, nil
}

// TicketScaffold holds everything a weighing ticket references
type TicketScaffold struct {
	User        *models.User
	Company     *models.TransportCompany
	Driver      *models.Driver
	Vehicle     *models.Vehicle
	Product     *models.Product
	Origin      *models.Location
	Destination *models.Location
}

// CreateTicketScaffold creates the full entity graph a ticket needs
func (tf *TestFixtures) CreateTicketScaffold() (*TicketScaffold, error) {
	user, err := tf.CreateTestUser(models.RoleOperator)
	if err != nil {
		return nil, err
	}
	company, err := tf.CreateTestTransportCompany()
	if err != nil {
		return nil, err
	}
	driver, err := tf.CreateTestDriver(company.ID)
	if err != nil {
		return nil, err
	}
	vehicle, err := tf.CreateTestVehicle(company.ID)
	if err != nil {
		return nil, err
	}
	product, err := tf.CreateTestProduct()
	if err != nil {
		return nil, err
	}
	origin, err := tf.CreateTestLocation(models.LocationTypeFarm)
	if err != nil {
		return nil, err
	}
	destination, err := tf.CreateTestLocation(models.LocationTypeSlaughter)
	if err != nil {
		return nil, err
	}

	return &TicketScaffold{
		User:        user,
		Company:     company,
		Driver:      driver,
		Vehicle:     vehicle,
		Product:     product,
		Origin:      origin,
		Destination: destination,
	}, nil
}
