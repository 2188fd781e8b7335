package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"court_id",
			"date",
			"start_time",
			"duration_min",
			"type",
			"status",
			"owner_id",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"court_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"institution_id": bson.M{
				"bsonType": "string",
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  "^\\d{4}-\\d{2}-\\d{2}$",
			},

			"start_time": bson.M{
				"bsonType": "string",
				"pattern":  "^\\d{2}:\\d{2}$",
			},

			"duration_min": bson.M{
				"bsonType": "int",
				"minimum":  30,
				"maximum":  180,
			},

			"type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"normal",
					"class",
					"tournament",
					"school",
					"birthday",
					"season",
				},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"cancelled",
					"completed",
				},
			},

			"price": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"owner_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"owner_is_member": bson.M{
				"bsonType": "bool",
			},

			"players": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  30,
			},

			"notes": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"cancelled_by": bson.M{
				"bsonType": "string",
			},

			"cancel_reason": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
