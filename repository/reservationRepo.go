package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"

	"inventory-service/data"
	"inventory-service/domain"
)

// NoSQL: ReservationRepo struct encapsulating Cassandra api client
type ReservationRepo struct {
	session *gocql.Session
	logger  *log.Logger
}

func NewReservationRepo(db string, logger *log.Logger) (*ReservationRepo, error) {
	cluster := gocql.NewCluster(db)
	cluster.Keyspace = "system"
	session, err := cluster.CreateSession()
	if err != nil {
		logger.Println(err)
		return nil, err
	}
	// Create 'reservation' keyspace
	err = session.Query(
		fmt.Sprintf(`CREATE KEYSPACE IF NOT EXISTS %s
					WITH replication = {
						'class' : 'SimpleStrategy',
						'replication_factor' : %d
					}`, "reservation", 1)).Exec()
	if err != nil {
		logger.Println(err)
	}
	session.Close()

	cluster.Keyspace = "reservation"
	cluster.Consistency = gocql.Quorum
	session, err = cluster.CreateSession()
	if err != nil {
		logger.Println(err)
		return nil, err
	}

	return &ReservationRepo{
		session: session,
		logger:  logger,
	}, nil
}

func (rr *ReservationRepo) CloseSession() {
	rr.session.Close()
}

// Create reservations_by_room table
func (rr *ReservationRepo) CreateTables() {
	err := rr.session.Query(
		`CREATE TABLE IF NOT EXISTS reservations_by_room (
        reservation_id timeuuid,
        room_type_id text,
        check_in_date timestamp,
        check_out_date timestamp,
        quantity int,
        status text,
        created_at timestamp,
        PRIMARY KEY ((room_type_id), check_in_date, reservation_id)
    ) WITH CLUSTERING ORDER BY (check_in_date ASC);`,
	).Exec()

	if err != nil {
		rr.logger.Println(err)
	}

	err = rr.session.Query(
		`CREATE INDEX IF NOT EXISTS idx_reservation_id ON reservations_by_room (reservation_id);`,
	).Exec()

	if err != nil {
		rr.logger.Println(err)
	}
}

func (rr *ReservationRepo) Insert(ctx context.Context, reservation *data.Reservation) error {
	if reservation.ID == "" {
		reservation.ID = gocql.TimeUUID().String()
	}

	err := rr.session.Query(
		`INSERT INTO reservations_by_room
         (reservation_id, room_type_id, check_in_date, check_out_date, quantity, status, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		reservation.ID,
		reservation.RoomTypeID,
		reservation.CheckIn,
		reservation.CheckOut,
		reservation.Quantity,
		string(reservation.Status),
		reservation.CreatedAt,
	).WithContext(ctx).Exec()

	if err != nil {
		rr.logger.Println(err)
		return err
	}
	return nil
}

func (rr *ReservationRepo) GetByID(ctx context.Context, reservationID string) (*data.Reservation, error) {
	var reservation data.Reservation
	var status string

	err := rr.session.Query(
		`SELECT reservation_id, room_type_id, check_in_date, check_out_date, quantity, status, created_at
         FROM reservations_by_room WHERE reservation_id = ? ALLOW FILTERING`,
		reservationID,
	).WithContext(ctx).Scan(&reservation.ID, &reservation.RoomTypeID, &reservation.CheckIn,
		&reservation.CheckOut, &reservation.Quantity, &status, &reservation.CreatedAt)

	if err == gocql.ErrNotFound {
		return nil, domain.ErrReservationNotFound()
	}
	if err != nil {
		rr.logger.Println(err)
		return nil, err
	}
	reservation.Status = data.ReservationStatus(status)
	return &reservation, nil
}

func (rr *ReservationRepo) GetByRoomType(ctx context.Context, roomTypeID string) (data.Reservations, error) {
	scanner := rr.session.Query(
		`SELECT reservation_id, room_type_id, check_in_date, check_out_date, quantity, status, created_at
         FROM reservations_by_room WHERE room_type_id = ?`,
		roomTypeID,
	).WithContext(ctx).Iter().Scanner()

	var reservations data.Reservations
	for scanner.Next() {
		var reservation data.Reservation
		var status string
		err := scanner.Scan(&reservation.ID, &reservation.RoomTypeID, &reservation.CheckIn,
			&reservation.CheckOut, &reservation.Quantity, &status, &reservation.CreatedAt)
		if err != nil {
			rr.logger.Println(err)
			return nil, err
		}
		reservation.Status = data.ReservationStatus(status)
		reservations = append(reservations, &reservation)
	}
	if err := scanner.Err(); err != nil {
		rr.logger.Println(err)
		return nil, err
	}
	return reservations, nil
}

func (rr *ReservationRepo) CoveringDate(ctx context.Context, roomTypeID string, date time.Time) (data.Reservations, error) {
	day := data.Day(date)

	scanner := rr.session.Query(
		`SELECT reservation_id, room_type_id, check_in_date, check_out_date, quantity, status, created_at
         FROM reservations_by_room
         WHERE room_type_id = ? AND check_in_date <= ? ALLOW FILTERING`,
		roomTypeID, day,
	).WithContext(ctx).Iter().Scanner()

	var reservations data.Reservations
	for scanner.Next() {
		var reservation data.Reservation
		var status string
		err := scanner.Scan(&reservation.ID, &reservation.RoomTypeID, &reservation.CheckIn,
			&reservation.CheckOut, &reservation.Quantity, &status, &reservation.CreatedAt)
		if err != nil {
			rr.logger.Println(err)
			return nil, err
		}
		reservation.Status = data.ReservationStatus(status)
		if reservation.Covers(day) {
			reservations = append(reservations, &reservation)
		}
	}
	if err := scanner.Err(); err != nil {
		rr.logger.Println(err)
		return nil, err
	}
	return reservations, nil
}

func (rr *ReservationRepo) UpdateStatus(ctx context.Context, reservationID string, status data.ReservationStatus) error {
	reservation, err := rr.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}

	err = rr.session.Query(
		`UPDATE reservations_by_room SET status = ?
         WHERE room_type_id = ? AND check_in_date = ? AND reservation_id = ?`,
		string(status),
		reservation.RoomTypeID,
		reservation.CheckIn,
		reservation.ID,
	).WithContext(ctx).Exec()

	if err != nil {
		rr.logger.Println(err)
		return err
	}
	return nil
}
