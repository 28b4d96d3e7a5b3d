package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"

	"inventory-service/data"
)

// NoSQL: InventoryRepo struct encapsulating Cassandra api client
type InventoryRepo struct {
	session *gocql.Session //connection towards CassandraDB
	logger  *log.Logger    //write messages inside Console
}

// NoSQL: Constructor which reads db configuration from environment and creates a keyspace
func NewInventoryRepo(db string, logger *log.Logger) (*InventoryRepo, error) {
	// Connect to default keyspace
	cluster := gocql.NewCluster(db)
	cluster.Keyspace = "system"
	session, err := cluster.CreateSession()
	if err != nil {
		logger.Println(err)
		return nil, err
	}
	// Create 'inventory' keyspace
	err = session.Query(
		fmt.Sprintf(`CREATE KEYSPACE IF NOT EXISTS %s
					WITH replication = {
						'class' : 'SimpleStrategy',
						'replication_factor' : %d
					}`, "inventory", 1)).Exec()
	if err != nil {
		logger.Println(err)
	}
	session.Close()

	// Connect to inventory keyspace
	cluster.Keyspace = "inventory"
	cluster.Consistency = gocql.Quorum
	session, err = cluster.CreateSession()
	if err != nil {
		logger.Println(err)
		return nil, err
	}

	return &InventoryRepo{
		session: session,
		logger:  logger,
	}, nil
}

// Disconnect from database
func (ir *InventoryRepo) CloseSession() {
	ir.session.Close()
}

// Create availability_by_room table, partitioned by room type so a whole
// calendar lives on one partition and range scans stay cheap
func (ir *InventoryRepo) CreateTables() {
	err := ir.session.Query(
		`CREATE TABLE IF NOT EXISTS availability_by_room (
        room_type_id text,
        date timestamp,
        total_rooms int,
        booked_rooms int,
        price double,
        open boolean,
        PRIMARY KEY ((room_type_id), date)
    ) WITH CLUSTERING ORDER BY (date ASC);`,
	).Exec()

	if err != nil {
		ir.logger.Println(err)
	}
}

func (ir *InventoryRepo) Find(ctx context.Context, roomTypeID string, date time.Time) (*data.AvailabilityRecord, error) {
	record := data.AvailabilityRecord{RoomTypeID: roomTypeID, Stored: true}

	err := ir.session.Query(
		`SELECT date, total_rooms, booked_rooms, price, open
         FROM availability_by_room WHERE room_type_id = ? AND date = ?`,
		roomTypeID, data.Day(date),
	).WithContext(ctx).Scan(&record.Date, &record.TotalRooms, &record.BookedRooms, &record.Price, &record.Open)

	if err == gocql.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		ir.logger.Println(err)
		return nil, err
	}
	record.Date = data.Day(record.Date)
	return &record, nil
}

func (ir *InventoryRepo) Save(ctx context.Context, record *data.AvailabilityRecord) error {
	err := ir.session.Query(
		`INSERT INTO availability_by_room
         (room_type_id, date, total_rooms, booked_rooms, price, open)
         VALUES (?, ?, ?, ?, ?, ?)`,
		record.RoomTypeID,
		data.Day(record.Date),
		record.TotalRooms,
		record.BookedRooms,
		record.Price,
		record.Open,
	).WithContext(ctx).Exec()

	if err != nil {
		ir.logger.Println(err)
		return err
	}
	return nil
}

func (ir *InventoryRepo) FindRange(ctx context.Context, roomTypeID string, start time.Time, end time.Time) (data.AvailabilityRecords, error) {
	scanner := ir.session.Query(
		`SELECT date, total_rooms, booked_rooms, price, open
         FROM availability_by_room
         WHERE room_type_id = ? AND date >= ? AND date < ?`,
		roomTypeID, start, end,
	).WithContext(ctx).Iter().Scanner()

	var records data.AvailabilityRecords
	for scanner.Next() {
		record := data.AvailabilityRecord{RoomTypeID: roomTypeID, Stored: true}
		err := scanner.Scan(&record.Date, &record.TotalRooms, &record.BookedRooms, &record.Price, &record.Open)
		if err != nil {
			ir.logger.Println(err)
			return nil, err
		}
		record.Date = data.Day(record.Date)
		records = append(records, &record)
	}
	if err := scanner.Err(); err != nil {
		ir.logger.Println(err)
		return nil, err
	}
	return records, nil
}

func (ir *InventoryRepo) DeleteByRoomType(ctx context.Context, roomTypeID string) error {
	err := ir.session.Query(
		`DELETE FROM availability_by_room WHERE room_type_id = ?`,
		roomTypeID,
	).WithContext(ctx).Exec()

	if err != nil {
		ir.logger.Println(err)
		return err
	}
	return nil
}
